// Package config loads, normalizes, and validates subtrans configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as OLLAMA_MODEL and
// GOOGLE_TRANSLATE_API_KEY. Backend and model selection per target language
// live here so the pipeline never inspects backend types at runtime.
//
// Validation failures carry services.ErrConfiguration.
package config
