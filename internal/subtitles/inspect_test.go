package subtitles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInspectBounds(t *testing.T) {
	doc, err := Parse(sampleSRT)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	report := Inspect(doc)
	if report.Cues != 3 {
		t.Fatalf("expected 3 cues, got %d", report.Cues)
	}
	if report.First != 1.0 || report.Last != 7.0 {
		t.Fatalf("unexpected bounds first=%v last=%v", report.First, report.Last)
	}
	if report.MaxLines != 2 {
		t.Fatalf("expected max lines 2, got %d", report.MaxLines)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", report.Issues)
	}
}

func TestInspectReportsInvalidTiming(t *testing.T) {
	doc, err := Parse("1\nnot a timing\nHola\n\n2\n00:00:02,000 --> 00:00:01,000\nAdiós\n\n")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	report := Inspect(doc)
	joined := strings.Join(report.Issues, ";")
	if !strings.Contains(joined, "invalid_timing: cue 1") {
		t.Fatalf("expected invalid timing issue, got %v", report.Issues)
	}
	if !strings.Contains(joined, "negative_duration: cue 2") {
		t.Fatalf("expected negative duration issue, got %v", report.Issues)
	}
}

func TestInspectEmpty(t *testing.T) {
	report := Inspect(&Document{Format: FormatSRT})
	if len(report.Issues) != 1 || report.Issues[0] != "empty_subtitle_file" {
		t.Fatalf("unexpected issues %v", report.Issues)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"00:00:01,500", 1.5, true},
		{"01:02:03.500", 3723.5, true},
		{"02:03.250", 123.25, true},
		{"", 0, false},
		{"00:61:00,000", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, err := parseTimestamp(tt.input)
		if (err == nil) != tt.ok {
			t.Errorf("parseTimestamp(%q) err=%v, want ok=%v", tt.input, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("parseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInspectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.vtt")
	raw := "WEBVTT\n\n00:00:00.500 --> 00:00:02.000\nHola\n\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	report, err := InspectFile(path)
	if err != nil {
		t.Fatalf("InspectFile returned error: %v", err)
	}
	if report.Format != FormatVTT || !report.Header || report.Cues != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.First != 0.5 || report.Last != 2.0 {
		t.Fatalf("unexpected bounds %+v", report)
	}
}
