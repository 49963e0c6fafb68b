// Package ollama runs prompts through the local ollama CLI
// (`ollama run <model> <prompt>`) and returns its standard output.
//
// Each call is bounded by a timeout. A missing binary is reported as
// services.ErrBackendUnavailable so callers stop issuing further prompts.
package ollama
