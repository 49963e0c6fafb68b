package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"subtrans/internal/language"
	"subtrans/internal/services"
)

//go:embed sample_config.toml
var sampleConfig string

// Backend names accepted in [translation].
const (
	BackendOllama = "ollama"
	BackendGoogle = "google"
)

// Paths contains output locations for logs and metrics.
type Paths struct {
	LogDir      string `toml:"log_dir"`
	MetricsFile string `toml:"metrics_file"`
}

// Translation selects languages and the backend used for each.
type Translation struct {
	SourceLanguage   string            `toml:"source_language"`
	TargetLanguages  []string          `toml:"target_languages"`
	DefaultBackend   string            `toml:"default_backend"`
	BackendOverrides map[string]string `toml:"backend_overrides"`
	SkipExisting     bool              `toml:"skip_existing"`
}

// Ollama configures the local generation CLI.
type Ollama struct {
	Binary            string            `toml:"binary"`
	Model             string            `toml:"model"`
	ModelOverrides    map[string]string `toml:"model_overrides"`
	TimeoutSeconds    int               `toml:"timeout_seconds"`
	MaxRetries        int               `toml:"max_retries"`
	RetryDelaySeconds int               `toml:"retry_delay_seconds"`
}

// Google configures the remote translation endpoint.
type Google struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	BatchSize      int    `toml:"batch_size"`
	BatchDelayMS   int    `toml:"batch_delay_ms"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	RetryAttempts  int    `toml:"retry_attempts"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for subtrans.
type Config struct {
	Paths       Paths       `toml:"paths"`
	Translation Translation `toml:"translation"`
	Ollama      Ollama      `toml:"ollama"`
	Google      Google      `toml:"google"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error; defaults and environment fallbacks apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "open", resolvedPath, err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "parse", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory and the metrics file's parent
// when they are configured.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if c.Paths.MetricsFile != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.MetricsFile))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// BackendFor returns the backend name configured for a target language.
func (c *Config) BackendFor(lang string) string {
	code, ok := language.Canonical(lang)
	if ok {
		if backend, found := c.Translation.BackendOverrides[code]; found {
			return backend
		}
	}
	return c.Translation.DefaultBackend
}

// ModelFor returns the ollama model used for a target language.
func (c *Config) ModelFor(lang string) string {
	code, ok := language.Canonical(lang)
	if ok {
		if model, found := c.Ollama.ModelOverrides[code]; found {
			return model
		}
	}
	return c.Ollama.Model
}

// OllamaTimeout bounds one generation call.
func (c *Config) OllamaTimeout() time.Duration {
	return time.Duration(c.Ollama.TimeoutSeconds) * time.Second
}

// OllamaRetryDelay is the pause between failed generation attempts.
func (c *Config) OllamaRetryDelay() time.Duration {
	return time.Duration(c.Ollama.RetryDelaySeconds) * time.Second
}

// GoogleBatchDelay is the pause after every remote batch.
func (c *Config) GoogleBatchDelay() time.Duration {
	return time.Duration(c.Google.BatchDelayMS) * time.Millisecond
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
