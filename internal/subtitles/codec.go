package subtitles

import (
	"strings"
)

// Parse splits raw subtitle text into segments. Blocks are separated by one
// or more blank lines; a whitespace-only line counts as blank. The first line
// of a block is the index and the second the timing, unless the first line is
// already a timing line (VTT cues may omit identifiers).
func Parse(raw string) (*Document, error) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	doc := &Document{Format: FormatSRT}
	for i, block := range splitBlocks(raw) {
		if i == 0 && strings.HasPrefix(block[0], vttHeaderPrefix) {
			doc.Format = FormatVTT
			doc.Header = strings.Join(block, "\n")
			continue
		}
		if doc.Format == FormatVTT && isVTTMetaBlock(block[0]) {
			doc.Notes = append(doc.Notes, Note{After: len(doc.Segments), Text: strings.Join(block, "\n")})
			continue
		}
		seg, err := parseBlock(block)
		if err != nil {
			err.Block = i + 1
			return nil, err
		}
		doc.Segments = append(doc.Segments, seg)
	}
	return doc, nil
}

// ParseFile is Parse with the format tag taken from path when the content
// does not settle it.
func ParseFile(path, raw string) (*Document, error) {
	doc, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if doc.Header == "" {
		doc.Format = DetectFormat(path, raw)
	}
	return doc, nil
}

func parseBlock(lines []string) (Segment, *FormatError) {
	if len(lines) < 2 {
		return Segment{}, &FormatError{First: lines[0], Reason: "missing timing line"}
	}
	if isTimingLine(lines[0]) {
		return Segment{Timing: lines[0], Lines: copyLines(lines[1:])}, nil
	}
	if !isTimingLine(lines[1]) {
		return Segment{}, &FormatError{First: lines[0], Reason: "missing timing line"}
	}
	return Segment{Index: lines[0], Timing: lines[1], Lines: copyLines(lines[2:])}, nil
}

func splitBlocks(content string) [][]string {
	var blocks [][]string
	var current []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func isTimingLine(line string) bool {
	return strings.Contains(line, "-->")
}

// isVTTMetaBlock reports whether a VTT block is a comment, style sheet or
// region definition rather than a cue.
func isVTTMetaBlock(first string) bool {
	if isTimingLine(first) {
		return false
	}
	for _, keyword := range []string{"NOTE", "STYLE", "REGION"} {
		rest, ok := strings.CutPrefix(first, keyword)
		if ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t') {
			return true
		}
	}
	return false
}

func copyLines(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// Serialize renders the document: index, timing, and text lines for each
// segment followed by exactly one blank line. VTT notes are written back at
// the position they were read from.
func Serialize(doc *Document) string {
	if doc == nil {
		return ""
	}
	var b strings.Builder
	if doc.Header != "" {
		b.WriteString(doc.Header)
		b.WriteString("\n\n")
	}
	notes := doc.Notes
	writeNotes := func(upTo int) {
		for len(notes) > 0 && notes[0].After <= upTo {
			b.WriteString(notes[0].Text)
			b.WriteString("\n\n")
			notes = notes[1:]
		}
	}
	for i, seg := range doc.Segments {
		writeNotes(i)
		if seg.Index != "" {
			b.WriteString(seg.Index)
			b.WriteByte('\n')
		}
		b.WriteString(seg.Timing)
		b.WriteByte('\n')
		for _, line := range seg.Lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	writeNotes(len(doc.Segments))
	return b.String()
}
