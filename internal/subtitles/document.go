package subtitles

import (
	"fmt"
	"path/filepath"
	"strings"

	"subtrans/internal/services"
)

// Format identifies the subtitle container syntax.
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// Extension returns the file extension, including the dot, for the format.
func (f Format) Extension() string {
	if f == FormatVTT {
		return ".vtt"
	}
	return ".srt"
}

const vttHeaderPrefix = "WEBVTT"

// Segment is one timed subtitle unit. Index and Timing are carried through
// verbatim; only Lines is ever replaced.
type Segment struct {
	Index  string
	Timing string
	Lines  []string
}

// Text joins the text lines with newlines, the form sent to a backend.
func (s Segment) Text() string {
	return strings.Join(s.Lines, "\n")
}

// WithText returns a copy of the segment carrying text split into lines.
// Blank lines are dropped so the block separator cannot appear inside a cue.
func (s Segment) WithText(text string) Segment {
	out := Segment{Index: s.Index, Timing: s.Timing}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out.Lines = append(out.Lines, line)
	}
	return out
}

// Document is an ordered sequence of segments plus the format tag. Header
// holds a leading WEBVTT block, passed through untouched.
type Document struct {
	Format   Format
	Header   string
	Segments []Segment
	Notes    []Note
}

// Note is a VTT NOTE, STYLE or REGION block kept verbatim. After is the
// number of segments that precede it.
type Note struct {
	After int
	Text  string
}

// Texts returns the text of every segment in document order.
func (d *Document) Texts() []string {
	texts := make([]string, len(d.Segments))
	for i, seg := range d.Segments {
		texts[i] = seg.Text()
	}
	return texts
}

// FormatError reports a block that cannot be read as a segment.
type FormatError struct {
	Block  int // 1-based block number, counting the VTT header
	First  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.First != "" {
		return fmt.Sprintf("subtitle format: block %d (%q): %s", e.Block, e.First, e.Reason)
	}
	return fmt.Sprintf("subtitle format: block %d: %s", e.Block, e.Reason)
}

// Is lets errors.Is match the shared format marker.
func (e *FormatError) Is(target error) bool {
	return target == services.ErrFormat
}

// DetectFormat chooses the format from the file extension, falling back to
// sniffing a WEBVTT header.
func DetectFormat(path, raw string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vtt":
		return FormatVTT
	case ".srt":
		return FormatSRT
	}
	if strings.HasPrefix(strings.TrimPrefix(raw, "\ufeff"), vttHeaderPrefix) {
		return FormatVTT
	}
	return FormatSRT
}
