package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/metrics"
	"subtrans/internal/services"
)

// Default per-segment retry policy.
const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 5 * time.Second
)

// PerSegmentConfig configures prompt construction and retries.
type PerSegmentConfig struct {
	Name           string
	SourceLanguage string
	Model          string
	ModelOverrides map[string]string
	MaxRetries     int
	RetryDelay     time.Duration
}

// PerSegment translates one text per call through a Generator.
type PerSegment struct {
	gen  Generator
	cfg  PerSegmentConfig
	opts options
}

// NewPerSegment wraps gen. Zero MaxRetries and negative RetryDelay fall back
// to the defaults.
func NewPerSegment(gen Generator, cfg PerSegmentConfig, opts ...Option) *PerSegment {
	if cfg.Name == "" {
		cfg.Name = "ollama"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	return &PerSegment{gen: gen, cfg: cfg, opts: buildOptions("translation."+cfg.Name, opts)}
}

func (p *PerSegment) Name() string { return p.cfg.Name }

func (p *PerSegment) BatchSize() int { return 1 }

// TranslateBatch handles texts one at a time. Once the generator reports it
// cannot run, the remaining texts fail with the same error without further
// calls.
func (p *PerSegment) TranslateBatch(ctx context.Context, texts []string, lang string) []Result {
	target, err := language.Resolve(lang)
	if err != nil {
		return failAll(len(texts), err)
	}
	results := make([]Result, len(texts))
	for i, text := range texts {
		results[i] = p.translate(ctx, target, text)
		if errors.Is(results[i].Err, services.ErrBackendUnavailable) {
			for j := i + 1; j < len(texts); j++ {
				results[j].Err = results[i].Err
			}
			break
		}
	}
	return results
}

// Prompt builds the text sent to the model.
func (p *PerSegment) Prompt(target language.Target, text string) string {
	return fmt.Sprintf("%s Text to translate: \"%s\"", target.Instruction(p.cfg.SourceLanguage), text)
}

// ModelFor returns the model used for a target language.
func (p *PerSegment) ModelFor(code string) string {
	if model, ok := p.cfg.ModelOverrides[code]; ok && model != "" {
		return model
	}
	return p.cfg.Model
}

func (p *PerSegment) translate(ctx context.Context, target language.Target, text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Text: text}
	}
	prompt := p.Prompt(target, text)
	model := p.ModelFor(target.Code)
	logger := logging.WithContext(ctx, p.opts.logger)

	var lastErr error
	for attempt := 1; attempt <= p.cfg.MaxRetries; attempt++ {
		out, err := p.gen.Generate(ctx, model, prompt)
		if err == nil {
			p.opts.metrics.BackendCall(p.cfg.Name, metrics.ResultOK)
			return Result{Text: out}
		}
		p.opts.metrics.BackendCall(p.cfg.Name, metrics.ResultError)
		lastErr = err
		if services.IsFatal(err) || ctx.Err() != nil {
			return Result{Err: err}
		}
		if attempt == p.cfg.MaxRetries {
			break
		}
		logger.Warn("generation failed; retrying",
			logging.Int("attempt", attempt),
			logging.Int("max_attempts", p.cfg.MaxRetries),
			logging.Duration("delay", p.cfg.RetryDelay),
			logging.String("error_kind", services.Kind(err)),
			logging.Error(err),
		)
		p.opts.metrics.BackendRetry(p.cfg.Name)
		if err := p.opts.sleep(ctx, p.cfg.RetryDelay); err != nil {
			return Result{Err: err}
		}
	}
	return Result{Err: services.Wrap(services.ErrSegment, p.cfg.Name, "translate",
		fmt.Sprintf("failed after %d attempts", p.cfg.MaxRetries), lastErr)}
}
