package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subtrans/internal/config"
	"subtrans/internal/subtitles"
)

type inspectOutput struct {
	Path     string   `json:"path"`
	Format   string   `json:"format"`
	Cues     int      `json:"cues"`
	Header   bool     `json:"header"`
	First    float64  `json:"first_seconds"`
	Last     float64  `json:"last_seconds"`
	MaxLines int      `json:"max_lines"`
	Issues   []string `json:"issues,omitempty"`
}

func newInspectCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "inspect <subtitle-file>",
		Short:       "Parse a subtitle file and report its structure",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			report, err := subtitles.InspectFile(path)
			if err != nil {
				return err
			}
			result := inspectOutput{
				Path:     path,
				Format:   string(report.Format),
				Cues:     report.Cues,
				Header:   report.Header,
				First:    report.First,
				Last:     report.Last,
				MaxLines: report.MaxLines,
				Issues:   report.Issues,
			}
			if jsonOut {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Subtitle", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Path", statusInfo, path, colorize))
			fmt.Fprintln(out, renderStatusLine("Format", statusInfo, result.Format, colorize))
			fmt.Fprintln(out, renderStatusLine("Cues", statusInfo, strconv.Itoa(result.Cues), colorize))
			fmt.Fprintln(out, renderStatusLine("WEBVTT header", statusInfo, yesNo(result.Header), colorize))
			if result.Cues > 0 {
				span := fmt.Sprintf("%s - %s", formatSeconds(result.First), formatSeconds(result.Last))
				fmt.Fprintln(out, renderStatusLine("Span", statusInfo, span, colorize))
				fmt.Fprintln(out, renderStatusLine("Max lines per cue", statusInfo, strconv.Itoa(result.MaxLines), colorize))
			}
			if len(result.Issues) == 0 {
				fmt.Fprintln(out, renderStatusLine("Issues", statusOK, "none", colorize))
				return nil
			}
			for _, issue := range result.Issues {
				fmt.Fprintln(out, renderStatusLine("Issue", statusWarn, issue, colorize))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func formatSeconds(value float64) string {
	total := int(value * 1000)
	ms := total % 1000
	secs := total / 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", secs/3600, (secs/60)%60, secs%60, ms)
}
