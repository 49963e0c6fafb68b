package translation

import (
	"context"
	"log/slog"
	"time"

	"subtrans/internal/logging"
	"subtrans/internal/metrics"
)

// Result is the outcome for one input text.
type Result struct {
	Text string
	Err  error
}

// Backend translates batches of subtitle texts into one target language.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	// BatchSize is the number of texts the caller should pass per call.
	BatchSize() int
	// TranslateBatch returns exactly len(texts) results in input order.
	TranslateBatch(ctx context.Context, texts []string, lang string) []Result
}

// Generator produces model output for a prompt.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Service translates text between remote language codes.
type Service interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

type options struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	sleeper func(time.Duration)
}

// Option customizes a backend.
type Option func(*options)

// WithLogger sets the logger used for retry and alignment warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records backend calls and retries.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithSleeper overrides how delays are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(o *options) {
		o.sleeper = sleeper
	}
}

func buildOptions(component string, opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.NewComponentLogger(o.logger, component)
	return o
}

func (o options) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if o.sleeper != nil {
		o.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func failAll(n int, err error) []Result {
	results := make([]Result, n)
	for i := range results {
		results[i].Err = err
	}
	return results
}
