package config

import (
	"fmt"
	"os"
	"strings"

	"subtrans/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranslation()
	c.normalizeOllama()
	c.normalizeGoogle()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.MetricsFile, err = expandPath(strings.TrimSpace(c.Paths.MetricsFile)); err != nil {
		return fmt.Errorf("paths.metrics_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranslation() {
	source := strings.TrimSpace(c.Translation.SourceLanguage)
	if source == "" {
		source = defaultSourceLanguage
	}
	if code, ok := language.Canonical(source); ok {
		source = code
	}
	c.Translation.SourceLanguage = source

	// Unknown codes are kept verbatim so Validate can name them.
	targets := make([]string, 0, len(c.Translation.TargetLanguages))
	for _, code := range c.Translation.TargetLanguages {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if canonical, ok := language.Canonical(code); ok {
			code = canonical
		}
		targets = append(targets, code)
	}
	c.Translation.TargetLanguages = targets

	c.Translation.DefaultBackend = strings.ToLower(strings.TrimSpace(c.Translation.DefaultBackend))
	if c.Translation.DefaultBackend == "" {
		c.Translation.DefaultBackend = defaultBackend
	}
	if c.Translation.BackendOverrides == nil {
		c.Translation.BackendOverrides = defaultBackendOverrides()
	}
	c.Translation.BackendOverrides = normalizeLanguageMap(c.Translation.BackendOverrides, true)
}

func (c *Config) normalizeOllama() {
	c.Ollama.Binary = strings.TrimSpace(c.Ollama.Binary)
	if c.Ollama.Binary == "" {
		c.Ollama.Binary = defaultOllamaBinary
	}
	c.Ollama.Model = strings.TrimSpace(c.Ollama.Model)
	if c.Ollama.Model == "" {
		if value, ok := os.LookupEnv(ollamaModelEnv); ok {
			c.Ollama.Model = strings.TrimSpace(value)
		}
	}
	if c.Ollama.Model == "" {
		c.Ollama.Model = defaultOllamaModel
	}
	if c.Ollama.ModelOverrides == nil {
		c.Ollama.ModelOverrides = defaultModelOverrides()
	}
	c.Ollama.ModelOverrides = normalizeLanguageMap(c.Ollama.ModelOverrides, false)
}

func (c *Config) normalizeGoogle() {
	c.Google.BaseURL = strings.TrimSpace(c.Google.BaseURL)
	c.Google.APIKey = strings.TrimSpace(c.Google.APIKey)
	if c.Google.APIKey == "" {
		if value, ok := os.LookupEnv(googleTranslateAPIKeyEnv); ok {
			c.Google.APIKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// normalizeLanguageMap canonicalizes keys; unknown keys are kept verbatim so
// validation can report them.
func normalizeLanguageMap(values map[string]string, lowerValues bool) map[string]string {
	out := make(map[string]string, len(values))
	for key, value := range values {
		key = strings.TrimSpace(key)
		if canonical, ok := language.Canonical(key); ok {
			key = canonical
		}
		value = strings.TrimSpace(value)
		if lowerValues {
			value = strings.ToLower(value)
		}
		out[key] = value
	}
	return out
}
