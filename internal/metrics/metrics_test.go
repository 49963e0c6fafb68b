package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Segment("fr", OutcomeTranslated)
	m.Segment("fr", OutcomeTranslated)
	m.Segment("fr", OutcomeFallback)
	m.BackendCall("ollama", ResultError)
	m.BackendRetry("ollama")
	m.RunDuration("fr", 1500*time.Millisecond)

	path := filepath.Join(t.TempDir(), "textfile", "subtrans.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	content := string(data)
	for _, want := range []string{
		`subtrans_segments_total{language="fr",outcome="translated"} 2`,
		`subtrans_segments_total{language="fr",outcome="fallback"} 1`,
		`subtrans_backend_calls_total{backend="ollama",result="error"} 1`,
		`subtrans_backend_retries_total{backend="ollama"} 1`,
		`subtrans_last_run_duration_seconds{language="fr"} 1.5`,
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("missing %q in:\n%s", want, content)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Segment("fr", OutcomeTranslated)
	m.BackendCall("google", ResultOK)
	m.BackendRetry("google")
	m.RunDuration("fr", time.Second)
	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Fatalf("nil WriteTextfile returned error: %v", err)
	}
	if m.Registry() != nil {
		t.Fatal("expected nil registry")
	}
}

func TestWriteTextfileEmptyPath(t *testing.T) {
	if err := New().WriteTextfile(""); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}
