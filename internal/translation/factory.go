package translation

import (
	"fmt"

	"subtrans/internal/config"
	"subtrans/internal/language"
	"subtrans/internal/services"
	"subtrans/internal/services/googletranslate"
	"subtrans/internal/services/ollama"
)

// NewFromConfig builds the backend configured for lang.
func NewFromConfig(cfg *config.Config, lang string, opts ...Option) (Backend, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "translation", "new backend", "config required", nil)
	}
	target, err := language.Resolve(lang)
	if err != nil {
		return nil, err
	}
	switch backend := cfg.BackendFor(target.Code); backend {
	case config.BackendOllama:
		client := ollama.NewClient(ollama.Config{
			Binary:  cfg.Ollama.Binary,
			Timeout: cfg.OllamaTimeout(),
		})
		return NewPerSegment(client, PerSegmentConfig{
			Name:           config.BackendOllama,
			SourceLanguage: cfg.Translation.SourceLanguage,
			Model:          cfg.Ollama.Model,
			ModelOverrides: cfg.Ollama.ModelOverrides,
			MaxRetries:     cfg.Ollama.MaxRetries,
			RetryDelay:     cfg.OllamaRetryDelay(),
		}, opts...), nil
	case config.BackendGoogle:
		client := googletranslate.NewClient(googletranslate.Config{
			BaseURL:        cfg.Google.BaseURL,
			APIKey:         cfg.Google.APIKey,
			TimeoutSeconds: cfg.Google.TimeoutSeconds,
		}, googletranslate.WithRetryMaxAttempts(cfg.Google.RetryAttempts))
		return NewBatched(client, BatchedConfig{
			Name:           config.BackendGoogle,
			SourceLanguage: cfg.Translation.SourceLanguage,
			BatchSize:      cfg.Google.BatchSize,
			Delay:          cfg.GoogleBatchDelay(),
		}, opts...), nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "translation", "new backend",
			fmt.Sprintf("unknown backend %q for %s", backend, target.Code), nil)
	}
}
