package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"subtrans/internal/fileutil"
	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/services"
)

// RunAllOptions controls multi-language runs.
type RunAllOptions struct {
	SkipExisting bool
}

// OutputPathFor derives "<base>.<lang><ext>" next to source. A trailing
// ".<sourceLang>" on the base name is replaced rather than kept, so
// "movie.es.srt" becomes "movie.fr.srt".
func OutputPathFor(source, lang, sourceLang string) string {
	dir := filepath.Dir(source)
	name := filepath.Base(source)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if sourceLang != "" {
		suffix := "." + strings.ToLower(sourceLang)
		if strings.HasSuffix(strings.ToLower(stem), suffix) && len(stem) > len(suffix) {
			stem = stem[:len(stem)-len(suffix)]
		}
	}
	return filepath.Join(dir, stem+"."+lang+ext)
}

// RunAll translates source into every language in langs, in order. All codes
// are validated before the first backend call. A fatal error (bad input
// format, configuration, unavailable backend, cancellation) stops the loop;
// other failures are collected and the next language proceeds.
func (r *Runner) RunAll(ctx context.Context, source string, langs []string, opts RunAllOptions) ([]Result, error) {
	codes, invalid := language.NormalizeList(langs)
	if len(invalid) > 0 {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "validate languages",
			fmt.Sprintf("unsupported language codes %v (supported: %s)", invalid, strings.Join(language.Codes(), ", ")), nil)
	}
	if len(codes) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "validate languages", "no target languages", nil)
	}

	results := make([]Result, 0, len(codes))
	var failures []error
	for _, code := range codes {
		output := OutputPathFor(source, code, r.sourceLanguage)
		if opts.SkipExisting && fileutil.Exists(output) {
			r.logger.Info("output exists; skipping language",
				logging.String(logging.FieldLanguage, code),
				logging.String("output", output),
			)
			results = append(results, Result{Language: code, State: StateSkipped, OutputPath: output})
			continue
		}

		res, err := r.Run(ctx, Request{SourcePath: source, OutputPath: output, Language: code})
		results = append(results, res)
		if err == nil {
			continue
		}
		if services.IsFatal(err) || ctx.Err() != nil {
			return results, err
		}
		logging.ErrorWithContext(r.logger, "language run failed; continuing", "language_failed",
			logging.String(logging.FieldLanguage, code),
			logging.Error(err),
		)
		failures = append(failures, fmt.Errorf("%s: %w", code, err))
	}
	return results, errors.Join(failures...)
}
