package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"subtrans/internal/config"
	"subtrans/internal/services"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OLLAMA_MODEL", "")
	os.Unsetenv("OLLAMA_MODEL")
	t.Setenv("GOOGLE_TRANSLATE_API_KEY", "")
	os.Unsetenv("GOOGLE_TRANSLATE_API_KEY")
	t.Chdir(t.TempDir())
	return home
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subtrans.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(home, ".config", "subtrans", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Translation.SourceLanguage != "es" {
		t.Fatalf("unexpected source language %q", cfg.Translation.SourceLanguage)
	}
	if got := strings.Join(cfg.Translation.TargetLanguages, ","); got != "en,fr,de,it,ru,zh" {
		t.Fatalf("unexpected targets %q", got)
	}
	if cfg.BackendFor("zh") != config.BackendGoogle || cfg.BackendFor("fr") != config.BackendOllama {
		t.Fatalf("unexpected backend routing zh=%s fr=%s", cfg.BackendFor("zh"), cfg.BackendFor("fr"))
	}
	if cfg.ModelFor("zh") != "qwen:7b-chat" || cfg.ModelFor("de") != "llama3" {
		t.Fatalf("unexpected model routing zh=%s de=%s", cfg.ModelFor("zh"), cfg.ModelFor("de"))
	}
	if cfg.OllamaTimeout() != 60*time.Second || cfg.OllamaRetryDelay() != 5*time.Second || cfg.Ollama.MaxRetries != 3 {
		t.Fatalf("unexpected ollama defaults %+v", cfg.Ollama)
	}
	if cfg.Google.BatchSize != 5 || cfg.GoogleBatchDelay() != time.Second || cfg.Google.RetryAttempts != 1 {
		t.Fatalf("unexpected google defaults %+v", cfg.Google)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
}

func TestLoadProjectFileFallback(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("subtrans.toml", []byte("[translation]\ntarget_languages = [\"fr\"]\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}
	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "subtrans.toml" {
		t.Fatalf("expected project config, got %q exists=%v", resolved, exists)
	}
	if len(cfg.Translation.TargetLanguages) != 1 || cfg.Translation.TargetLanguages[0] != "fr" {
		t.Fatalf("unexpected targets %v", cfg.Translation.TargetLanguages)
	}
}

func TestLoadCustomPathNormalizes(t *testing.T) {
	home := isolate(t)
	path := writeConfig(t, `
[paths]
log_dir = "~/logs/subtrans"

[translation]
target_languages = ["FR", "zh-Hans", " de "]
default_backend = "Google"
backend_overrides = {}

[ollama]
model = " mistral "

[logging]
format = "JSON"
level = "DEBUG"
`)
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config to exist")
	}
	if cfg.Paths.LogDir != filepath.Join(home, "logs", "subtrans") {
		t.Fatalf("unexpected log dir %q", cfg.Paths.LogDir)
	}
	if got := strings.Join(cfg.Translation.TargetLanguages, ","); got != "fr,zh,de" {
		t.Fatalf("unexpected targets %q", got)
	}
	if cfg.BackendFor("zh") != config.BackendGoogle || cfg.BackendFor("fr") != config.BackendGoogle {
		t.Fatal("expected google everywhere once overrides are cleared")
	}
	if len(cfg.Translation.BackendOverrides) != 0 {
		t.Fatalf("expected empty overrides, got %v", cfg.Translation.BackendOverrides)
	}
	if cfg.ModelFor("fr") != "mistral" {
		t.Fatalf("unexpected model %q", cfg.ModelFor("fr"))
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.LogDir); err != nil || !info.IsDir() {
		t.Fatalf("expected log dir to exist: %v", err)
	}
}

func TestEnvFallbacks(t *testing.T) {
	isolate(t)
	t.Setenv("OLLAMA_MODEL", "gemma2")
	t.Setenv("GOOGLE_TRANSLATE_API_KEY", "secret")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Ollama.Model != "gemma2" {
		t.Fatalf("expected model from env, got %q", cfg.Ollama.Model)
	}
	if cfg.Google.APIKey != "secret" {
		t.Fatalf("expected api key from env, got %q", cfg.Google.APIKey)
	}

	path := writeConfig(t, "[ollama]\nmodel = \"llama3.1\"\n")
	cfg, _, _, err = config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Ollama.Model != "llama3.1" {
		t.Fatalf("expected file model to win, got %q", cfg.Ollama.Model)
	}
}

func TestCreateSample(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.BackendFor("zh") != config.BackendGoogle || cfg.ModelFor("zh") != "qwen:7b-chat" {
		t.Fatal("sample config lost the chinese overrides")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "[translation]\ntarget_language = [\"fr\"]\n")
	_, _, _, err := config.Load(path)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"unsupported target", func(c *config.Config) { c.Translation.TargetLanguages = []string{"fr", "xx"} }, "unsupported codes"},
		{"no targets", func(c *config.Config) { c.Translation.TargetLanguages = nil }, "at least one"},
		{"bad source", func(c *config.Config) { c.Translation.SourceLanguage = "not a code" }, "source_language"},
		{"unknown backend", func(c *config.Config) { c.Translation.DefaultBackend = "deepl" }, "default_backend"},
		{"override language", func(c *config.Config) { c.Translation.BackendOverrides = map[string]string{"ja": "google"} }, "backend_overrides"},
		{"override backend", func(c *config.Config) { c.Translation.BackendOverrides = map[string]string{"zh": "bing"} }, "unknown backend"},
		{"retries", func(c *config.Config) { c.Ollama.MaxRetries = 0 }, "ollama.max_retries"},
		{"timeout", func(c *config.Config) { c.Ollama.TimeoutSeconds = -1 }, "ollama.timeout_seconds"},
		{"retry delay", func(c *config.Config) { c.Ollama.RetryDelaySeconds = -1 }, "retry_delay_seconds"},
		{"batch size", func(c *config.Config) { c.Google.BatchSize = 0 }, "google.batch_size"},
		{"batch delay", func(c *config.Config) { c.Google.BatchDelayMS = -5 }, "batch_delay_ms"},
		{"empty model override", func(c *config.Config) { c.Ollama.ModelOverrides = map[string]string{"zh": ""} }, "must name a model"},
		{"log level", func(c *config.Config) { c.Logging.Level = "verbose" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Logging.Level = "info"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration marker, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
