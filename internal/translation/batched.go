package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/metrics"
	"subtrans/internal/services"
)

// Separator joins texts inside one batched request. It is a run of two-em
// dashes that does not occur in dialogue and survives translation verbatim.
const Separator = "⸻⸻⸻⸻⸻⸻⸻⸻⸻⸻"

// Default batching policy.
const (
	DefaultBatchSize  = 5
	DefaultBatchDelay = time.Second
)

// BatchedConfig configures batching.
type BatchedConfig struct {
	Name           string
	SourceLanguage string
	BatchSize      int
	// Delay is observed after every batch, successful or not.
	Delay time.Duration
}

// Batched translates several texts per call through a Service.
type Batched struct {
	svc  Service
	cfg  BatchedConfig
	opts options
}

// NewBatched wraps svc. A zero BatchSize and negative Delay fall back to the
// defaults.
func NewBatched(svc Service, cfg BatchedConfig, opts ...Option) *Batched {
	if cfg.Name == "" {
		cfg.Name = "google"
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Delay < 0 {
		cfg.Delay = DefaultBatchDelay
	}
	return &Batched{svc: svc, cfg: cfg, opts: buildOptions("translation."+cfg.Name, opts)}
}

func (b *Batched) Name() string { return b.cfg.Name }

func (b *Batched) BatchSize() int { return b.cfg.BatchSize }

// TranslateBatch sends texts as one request. A service failure fails every
// slot. When the response splits into fewer parts than inputs, the matched
// leading slots succeed and the rest fail with an alignment error; extra
// parts are dropped.
func (b *Batched) TranslateBatch(ctx context.Context, texts []string, lang string) []Result {
	if len(texts) == 0 {
		return nil
	}
	target, err := language.Resolve(lang)
	if err != nil {
		return failAll(len(texts), err)
	}
	logger := logging.WithContext(ctx, b.opts.logger)

	translated, err := b.svc.Translate(ctx, strings.Join(texts, Separator), b.cfg.SourceLanguage, target.RemoteCode)
	if delayErr := b.opts.sleep(ctx, b.cfg.Delay); delayErr != nil && err == nil {
		err = delayErr
	}
	if err != nil {
		b.opts.metrics.BackendCall(b.cfg.Name, metrics.ResultError)
		return failAll(len(texts), services.Wrap(services.ErrSegment, b.cfg.Name, "translate batch", "", err))
	}
	b.opts.metrics.BackendCall(b.cfg.Name, metrics.ResultOK)

	parts := strings.Split(translated, Separator)
	if len(parts) != len(texts) {
		logging.WarnWithContext(logger, "batch response misaligned",
			"alignment_mismatch",
			logging.Int("expected_parts", len(texts)),
			logging.Int("received_parts", len(parts)),
			logging.String(logging.FieldErrorHint, "the service altered the separator; affected segments keep their original text"),
			logging.String(logging.FieldImpact, "unmatched segments left untranslated"),
		)
	}
	results := make([]Result, len(texts))
	for i := range results {
		if i < len(parts) {
			results[i].Text = strings.TrimSpace(parts[i])
			continue
		}
		results[i].Err = services.Wrap(services.ErrAlignmentMismatch, b.cfg.Name, "split batch",
			fmt.Sprintf("slot %d of %d missing (received %d parts)", i+1, len(texts), len(parts)), nil)
	}
	return results
}
