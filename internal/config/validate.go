package config

import (
	"fmt"
	"sort"
	"strings"

	"subtrans/internal/language"
	"subtrans/internal/services"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranslation(); err != nil {
		return err
	}
	if err := c.validateOllama(); err != nil {
		return err
	}
	if err := c.validateGoogle(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTranslation() error {
	if _, ok := language.Canonical(c.Translation.SourceLanguage); !ok {
		return invalid("translation.source_language %q is not a language code", c.Translation.SourceLanguage)
	}
	if len(c.Translation.TargetLanguages) == 0 {
		return invalid("translation.target_languages must list at least one language")
	}
	if _, bad := language.NormalizeList(c.Translation.TargetLanguages); len(bad) > 0 {
		return invalid("translation.target_languages contains unsupported codes %v (supported: %s)", bad, strings.Join(language.Codes(), ", "))
	}
	if !knownBackend(c.Translation.DefaultBackend) {
		return invalid("translation.default_backend %q must be %q or %q", c.Translation.DefaultBackend, BackendOllama, BackendGoogle)
	}
	for _, code := range sortedKeys(c.Translation.BackendOverrides) {
		if _, ok := language.Lookup(code); !ok {
			return invalid("translation.backend_overrides: unsupported language %q", code)
		}
		if backend := c.Translation.BackendOverrides[code]; !knownBackend(backend) {
			return invalid("translation.backend_overrides.%s: unknown backend %q", code, backend)
		}
	}
	return nil
}

func (c *Config) validateOllama() error {
	if err := ensurePositiveMap(map[string]int{
		"ollama.timeout_seconds": c.Ollama.TimeoutSeconds,
		"ollama.max_retries":     c.Ollama.MaxRetries,
	}); err != nil {
		return err
	}
	if c.Ollama.RetryDelaySeconds < 0 {
		return invalid("ollama.retry_delay_seconds must be >= 0")
	}
	for _, code := range sortedKeys(c.Ollama.ModelOverrides) {
		if _, ok := language.Lookup(code); !ok {
			return invalid("ollama.model_overrides: unsupported language %q", code)
		}
		if c.Ollama.ModelOverrides[code] == "" {
			return invalid("ollama.model_overrides.%s must name a model", code)
		}
	}
	return nil
}

func (c *Config) validateGoogle() error {
	if err := ensurePositiveMap(map[string]int{
		"google.batch_size":      c.Google.BatchSize,
		"google.timeout_seconds": c.Google.TimeoutSeconds,
		"google.retry_attempts":  c.Google.RetryAttempts,
	}); err != nil {
		return err
	}
	if c.Google.BatchDelayMS < 0 {
		return invalid("google.batch_delay_ms must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return invalid("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
}

func knownBackend(name string) bool {
	return name == BackendOllama || name == BackendGoogle
}

func invalid(format string, args ...any) error {
	return services.Wrap(services.ErrConfiguration, "config", "validate", fmt.Sprintf(format, args...), nil)
}

func ensurePositiveMap(values map[string]int) error {
	for _, key := range sortedKeys(values) {
		if values[key] <= 0 {
			return invalid("%s must be positive", key)
		}
	}
	return nil
}

func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
