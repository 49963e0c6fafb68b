// Package services defines shared utilities consumed by the translation
// pipeline and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, target languages, and
//     backend names for logging.
//   - Structured error markers plus the Wrap helper that let the orchestrator
//     separate fatal failures (format, configuration, unavailable backend)
//     from segment failures it recovers locally.
//
// Subpackages wrap the concrete backends: ollama drives the local generation
// CLI and googletranslate talks to the remote translation API.
package services
