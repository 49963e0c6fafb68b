// Package logging assembles structured slog loggers and formatting helpers
// used across subtrans.
//
// It owns the console and JSON handlers, level and output plumbing, and
// context-aware helpers that tag log lines with the run id, target language,
// and backend of the translation in flight. A no-op logger is provided for
// tests and wiring code that cannot fail.
package logging
