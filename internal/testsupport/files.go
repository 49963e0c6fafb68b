package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleSRT is a small two-cue Spanish document.
const SampleSRT = "1\n00:00:01,000 --> 00:00:02,000\nHola.\n\n2\n00:00:03,000 --> 00:00:04,000\nAdiós.\n\n"

// WriteSubtitle writes content to dir/name, creating dir, and returns the
// path.
func WriteSubtitle(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
