package subtitles

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Report summarizes a parsed document without modifying it.
type Report struct {
	Format   Format
	Cues     int
	Header   bool
	First    float64
	Last     float64
	Issues   []string
	MaxLines int
}

// Inspect reads timing bounds and reports format issues. Timing lines are
// parsed here only for reporting; the codec never rewrites them.
func Inspect(doc *Document) Report {
	report := Report{Format: doc.Format, Cues: len(doc.Segments), Header: doc.Header != ""}
	if report.Cues == 0 {
		report.Issues = append(report.Issues, "empty_subtitle_file")
		return report
	}

	first := math.Inf(1)
	found := false
	for i, seg := range doc.Segments {
		if len(seg.Lines) > report.MaxLines {
			report.MaxLines = len(seg.Lines)
		}
		label := seg.Index
		if label == "" {
			label = strconv.Itoa(i + 1)
		}
		start, end, err := parseTimingLine(seg.Timing)
		if err != nil {
			report.Issues = append(report.Issues, fmt.Sprintf("invalid_timing: cue %s: %v", label, err))
			continue
		}
		found = true
		if start < first {
			first = start
		}
		if end > report.Last {
			report.Last = end
		}
		if end < start {
			report.Issues = append(report.Issues, fmt.Sprintf("negative_duration: cue %s", label))
		}
	}
	if !found {
		report.Issues = append(report.Issues, "no_valid_timestamps")
		return report
	}
	report.First = first
	return report
}

// InspectFile parses and inspects the subtitle file at path.
func InspectFile(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("read subtitle: %w", err)
	}
	doc, err := ParseFile(path, string(data))
	if err != nil {
		return Report{}, err
	}
	return Inspect(doc), nil
}

func parseTimingLine(line string) (float64, float64, error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("missing arrow in %q", line)
	}
	start, err := parseTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}
	// VTT cue settings may follow the end timestamp.
	endFields := strings.Fields(parts[1])
	if len(endFields) == 0 {
		return 0, 0, fmt.Errorf("missing end timestamp in %q", line)
	}
	end, err := parseTimestamp(endFields[0])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// parseTimestamp accepts SRT (00:00:01,500) and VTT (00:00:01.500 or
// 00:01.500) forms.
func parseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	normalized := strings.ReplaceAll(value, ",", ".")
	timeParts := strings.Split(normalized, ".")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	clock := strings.Split(timeParts[0], ":")
	if len(clock) == 2 {
		clock = append([]string{"0"}, clock...)
	}
	if len(clock) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(clock[0])
	minutes, errM := strconv.Atoi(clock[1])
	seconds, errS := strconv.Atoi(clock[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if minutes > 59 || seconds > 59 || millis > 999 {
		return 0, fmt.Errorf("timestamp out of range %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
