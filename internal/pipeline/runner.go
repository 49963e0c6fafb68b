package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"subtrans/internal/fileutil"
	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/metrics"
	"subtrans/internal/services"
	"subtrans/internal/subtitles"
	"subtrans/internal/textutil"
	"subtrans/internal/translation"
)

// State is the lifecycle position of a run.
type State string

const (
	StatePending     State = "pending"
	StateLoaded      State = "loaded"
	StateTranslating State = "translating"
	StateWritten     State = "written"
	StateSkipped     State = "skipped"
)

// BackendFactory returns the backend serving a canonical language code.
type BackendFactory func(lang string) (translation.Backend, error)

// Request describes one translation run. An empty OutputPath is derived
// from SourcePath and Language.
type Request struct {
	SourcePath string
	OutputPath string
	Language   string
}

// Result summarizes a run. State is the last state reached.
type Result struct {
	RunID      string
	Language   string
	Backend    string
	State      State
	Segments   int
	Translated int
	Failed     int
	Duration   time.Duration
	OutputPath string
}

// Runner executes translation runs. It is not safe for concurrent use.
type Runner struct {
	backends       BackendFactory
	sourceLanguage string
	logger         *slog.Logger
	metrics        *metrics.Metrics
	newRunID       func() string
	now            func() time.Time
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithMetrics records segment outcomes and run durations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithSourceLanguage sets the language of input documents, used to derive
// output names. Defaults to "es".
func WithSourceLanguage(code string) Option {
	return func(r *Runner) {
		if code = strings.TrimSpace(code); code != "" {
			r.sourceLanguage = code
		}
	}
}

// WithRunIDs overrides run id generation (useful for tests).
func WithRunIDs(next func() string) Option {
	return func(r *Runner) {
		if next != nil {
			r.newRunID = next
		}
	}
}

// NewRunner constructs a Runner that obtains backends from factory.
func NewRunner(factory BackendFactory, opts ...Option) *Runner {
	r := &Runner{
		backends:       factory,
		sourceLanguage: "es",
		newRunID:       uuid.NewString,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "pipeline")
	return r
}

// Run translates one document. Configuration and format problems are
// reported before any backend call, and no output exists unless the
// returned state is StateWritten.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	started := r.now()
	result := Result{RunID: r.newRunID(), State: StatePending}
	ctx = services.WithRunID(ctx, result.RunID)

	target, err := language.Resolve(req.Language)
	if err != nil {
		return result, err
	}
	result.Language = target.Code
	ctx = services.WithLanguage(ctx, target.Code)

	source := strings.TrimSpace(req.SourcePath)
	info, err := os.Stat(source)
	if err != nil {
		return result, services.Wrap(services.ErrConfiguration, "pipeline", "open source", source, err)
	}
	if info.IsDir() {
		return result, services.Wrap(services.ErrConfiguration, "pipeline", "open source", source+" is a directory", nil)
	}

	output := strings.TrimSpace(req.OutputPath)
	if output == "" {
		output = OutputPathFor(source, target.Code, r.sourceLanguage)
	}
	if samePath(source, output) {
		return result, services.Wrap(services.ErrConfiguration, "pipeline", "resolve output", "output would overwrite the source", nil)
	}
	result.OutputPath = output

	raw, err := os.ReadFile(source)
	if err != nil {
		return result, services.Wrap(services.ErrConfiguration, "pipeline", "read source", source, err)
	}
	doc, err := subtitles.ParseFile(source, string(raw))
	if err != nil {
		return result, err
	}
	result.State = StateLoaded
	result.Segments = len(doc.Segments)

	lock, err := fileutil.AcquireOutputLock(output)
	if err != nil {
		return result, services.Wrap(services.ErrConfiguration, "pipeline", "lock output", output, err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			r.logger.Debug("release output lock failed", logging.Error(err))
		}
	}()

	backend, err := r.backends(target.Code)
	if err != nil {
		return result, err
	}
	result.Backend = backend.Name()
	ctx = services.WithBackend(ctx, backend.Name())
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("subtitle loaded",
		logging.String("source", source),
		logging.String("format", string(doc.Format)),
		logging.Int("segments", result.Segments),
		logging.String("output", output),
	)

	result.State = StateTranslating
	translated, err := r.translate(ctx, logger, backend, doc, target.Code, &result)
	if err != nil {
		return result, err
	}

	rendered := subtitles.Serialize(&subtitles.Document{
		Format:   doc.Format,
		Header:   doc.Header,
		Segments: translated,
		Notes:    doc.Notes,
	})
	if err := fileutil.WriteFileAtomic(output, []byte(rendered), 0o644); err != nil {
		return result, services.Wrap(services.ErrTransient, "pipeline", "write output", output, err)
	}
	result.State = StateWritten
	result.Duration = r.now().Sub(started)
	r.metrics.RunDuration(target.Code, result.Duration)

	logger.Info("translation written",
		logging.String("output", output),
		logging.Int("segments", result.Segments),
		logging.Int("translated", result.Translated),
		logging.Int("failed", result.Failed),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}

func (r *Runner) translate(ctx context.Context, logger *slog.Logger, backend translation.Backend, doc *subtitles.Document, lang string, result *Result) ([]subtitles.Segment, error) {
	size := backend.BatchSize()
	if size <= 0 {
		size = 1
	}
	out := make([]subtitles.Segment, len(doc.Segments))
	copy(out, doc.Segments)
	sampler := logging.NewProgressSampler(10)

	for start := 0; start < len(doc.Segments); start += size {
		end := min(start+size, len(doc.Segments))
		chunk := doc.Segments[start:end]
		texts := make([]string, len(chunk))
		for i, seg := range chunk {
			texts[i] = seg.Text()
		}

		results := backend.TranslateBatch(ctx, texts, lang)
		for i, seg := range chunk {
			var res translation.Result
			if i < len(results) {
				res = results[i]
			} else {
				res.Err = services.Wrap(services.ErrAlignmentMismatch, "pipeline", "collect results", "backend returned too few results", nil)
			}
			if errors.Is(res.Err, services.ErrBackendUnavailable) {
				return nil, res.Err
			}
			text, err := r.accept(res, texts[i], lang)
			if err != nil {
				result.Failed++
				r.metrics.Segment(lang, metrics.OutcomeFallback)
				logging.WarnWithContext(logger, "segment translation failed; keeping original text",
					"segment_failure",
					logging.String("segment", segmentLabel(seg, start+i)),
					logging.String("error_kind", services.Kind(err)),
					logging.Error(err),
					logging.String(logging.FieldImpact, "segment left in the source language"),
				)
				continue
			}
			out[start+i] = seg.WithText(text)
			result.Translated++
			r.metrics.Segment(lang, metrics.OutcomeTranslated)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if sampler.ShouldLog(end, len(doc.Segments), lang) {
			logger.Info("translation progress",
				logging.Int("done", end),
				logging.Int("total", len(doc.Segments)),
				logging.Int("failed", result.Failed),
			)
		}
	}
	return out, nil
}

// accept cleans a backend result. An empty translation of non-empty text
// counts as a failure so the original is kept.
func (r *Runner) accept(res translation.Result, original, lang string) (string, error) {
	if res.Err != nil {
		return "", res.Err
	}
	cleaned := textutil.CleanTranslation(res.Text, lang)
	if cleaned == "" && strings.TrimSpace(original) != "" {
		return "", services.Wrap(services.ErrSegment, "pipeline", "clean translation", "empty translation", nil)
	}
	return cleaned, nil
}

func segmentLabel(seg subtitles.Segment, position int) string {
	if seg.Index != "" {
		return seg.Index
	}
	return fmt.Sprintf("#%d", position+1)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
