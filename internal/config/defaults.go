package config

const (
	defaultConfigPath        = "~/.config/subtrans/config.toml"
	projectConfigName        = "subtrans.toml"
	defaultSourceLanguage    = "es"
	defaultBackend           = BackendOllama
	defaultOllamaBinary      = "ollama"
	defaultOllamaModel       = "llama3"
	defaultOllamaTimeout     = 60
	defaultOllamaMaxRetries  = 3
	defaultOllamaRetryDelay  = 5
	defaultGoogleBatchSize   = 5
	defaultGoogleBatchDelay  = 1000
	defaultGoogleTimeout     = 30
	defaultGoogleRetries     = 1
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	ollamaModelEnv           = "OLLAMA_MODEL"
	googleTranslateAPIKeyEnv = "GOOGLE_TRANSLATE_API_KEY"
)

// defaultBackendOverrides routes Chinese to the remote service; local models
// produce unreliable Hanzi output.
func defaultBackendOverrides() map[string]string {
	return map[string]string{"zh": BackendGoogle}
}

func defaultModelOverrides() map[string]string {
	return map[string]string{"zh": "qwen:7b-chat"}
}

// Default returns a Config populated with repository defaults. Override maps
// stay nil here and are filled by normalize unless the file sets them, so an
// explicit empty table disables the built-in overrides.
func Default() Config {
	return Config{
		Translation: Translation{
			SourceLanguage:  defaultSourceLanguage,
			TargetLanguages: []string{"en", "fr", "de", "it", "ru", "zh"},
			DefaultBackend:  defaultBackend,
		},
		Ollama: Ollama{
			Binary:            defaultOllamaBinary,
			TimeoutSeconds:    defaultOllamaTimeout,
			MaxRetries:        defaultOllamaMaxRetries,
			RetryDelaySeconds: defaultOllamaRetryDelay,
		},
		Google: Google{
			BatchSize:      defaultGoogleBatchSize,
			BatchDelayMS:   defaultGoogleBatchDelay,
			TimeoutSeconds: defaultGoogleTimeout,
			RetryAttempts:  defaultGoogleRetries,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
