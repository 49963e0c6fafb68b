package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"subtrans/internal/pipeline"
	"subtrans/internal/services"
	"subtrans/internal/translation"
)

func TestOutputPathFor(t *testing.T) {
	tests := []struct {
		source string
		lang   string
		want   string
	}{
		{"/media/movie.srt", "fr", "/media/movie.fr.srt"},
		{"/media/movie.es.srt", "fr", "/media/movie.fr.srt"},
		{"/media/movie.ES.vtt", "de", "/media/movie.de.vtt"},
		{"/media/es.srt", "en", "/media/es.en.srt"},
		{"/media/show.spanish.srt", "zh", "/media/show.spanish.zh.srt"},
	}
	for _, tt := range tests {
		if got := pipeline.OutputPathFor(tt.source, tt.lang, "es"); got != tt.want {
			t.Errorf("OutputPathFor(%q, %q) = %q, want %q", tt.source, tt.lang, got, tt.want)
		}
	}
}

func TestRunAllWritesEachLanguage(t *testing.T) {
	source := writeSource(t, "movie.es.srt", sampleSRT)
	backend := &stubBackend{name: "google", size: 5, answer: upper}
	runner := pipeline.NewRunner(factoryFor(backend))

	results, err := runner.RunAll(context.Background(), source, []string{"fr", "DE", "fr"}, pipeline.RunAllOptions{})
	if err != nil {
		t.Fatalf("RunAll returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if backend.langs[0] != "fr" || backend.langs[1] != "de" {
		t.Fatalf("unexpected language order %v", backend.langs)
	}
	for _, res := range results {
		if res.State != pipeline.StateWritten {
			t.Fatalf("unexpected state for %s: %s", res.Language, res.State)
		}
		if _, err := os.Stat(res.OutputPath); err != nil {
			t.Fatalf("missing output for %s: %v", res.Language, err)
		}
	}
}

func TestRunAllSkipsExisting(t *testing.T) {
	source := writeSource(t, "movie.srt", sampleSRT)
	existing := filepath.Join(filepath.Dir(source), "movie.fr.srt")
	if err := os.WriteFile(existing, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	backend := &stubBackend{name: "google", size: 5, answer: upper}
	runner := pipeline.NewRunner(factoryFor(backend))

	results, err := runner.RunAll(context.Background(), source, []string{"fr", "it"}, pipeline.RunAllOptions{SkipExisting: true})
	if err != nil {
		t.Fatalf("RunAll returned error: %v", err)
	}
	if results[0].State != pipeline.StateSkipped || results[1].State != pipeline.StateWritten {
		t.Fatalf("unexpected states %+v", results)
	}
	raw, _ := os.ReadFile(existing)
	if string(raw) != "keep" {
		t.Fatal("existing output overwritten")
	}
	if len(backend.langs) != 1 || backend.langs[0] != "it" {
		t.Fatalf("unexpected backend calls %v", backend.langs)
	}
}

func TestRunAllValidatesCodesFirst(t *testing.T) {
	source := writeSource(t, "movie.srt", sampleSRT)
	backend := &stubBackend{name: "google", size: 5, answer: upper}
	runner := pipeline.NewRunner(factoryFor(backend))

	_, err := runner.RunAll(context.Background(), source, []string{"fr", "klingon"}, pipeline.RunAllOptions{})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if len(backend.calls) != 0 {
		t.Fatal("backend called before all codes were validated")
	}
}

func TestRunAllContinuesAfterNonFatalFailure(t *testing.T) {
	source := writeSource(t, "movie.srt", sampleSRT)
	backend := &stubBackend{name: "google", size: 5, answer: upper}
	runner := pipeline.NewRunner(func(lang string) (translation.Backend, error) {
		if lang == "fr" {
			return nil, services.Wrap(services.ErrTransient, "test", "build backend", "flaky", nil)
		}
		return backend, nil
	})

	results, err := runner.RunAll(context.Background(), source, []string{"fr", "it"}, pipeline.RunAllOptions{})
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected joined transient error, got %v", err)
	}
	if len(results) != 2 || results[1].State != pipeline.StateWritten {
		t.Fatalf("later language did not run: %+v", results)
	}
}

func TestRunAllStopsOnFatalFailure(t *testing.T) {
	source := writeSource(t, "movie.srt", sampleSRT)
	calls := 0
	runner := pipeline.NewRunner(func(string) (translation.Backend, error) {
		calls++
		return nil, services.Wrap(services.ErrBackendUnavailable, "test", "build backend", "missing", nil)
	})

	results, err := runner.RunAll(context.Background(), source, []string{"fr", "it"}, pipeline.RunAllOptions{})
	if !errors.Is(err, services.ErrBackendUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if calls != 1 || len(results) != 1 {
		t.Fatalf("expected to stop after first language, calls=%d results=%d", calls, len(results))
	}
}
