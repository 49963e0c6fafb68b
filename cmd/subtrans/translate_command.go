package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"subtrans/internal/config"
	"subtrans/internal/pipeline"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var lang string
	var output string

	cmd := &cobra.Command{
		Use:   "translate <subtitle-file>",
		Short: "Translate one subtitle file into one language",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("provide the subtitle file to translate. Example: subtrans translate movie.es.srt --lang fr")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(lang) == "" {
				return errors.New("--lang is required")
			}
			source, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve source path: %w", err)
			}
			target := strings.TrimSpace(output)
			if target != "" {
				if target, err = config.ExpandPath(target); err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
			}

			sess, err := ctx.openSession("translate")
			if err != nil {
				return err
			}
			defer sess.close()

			res, err := sess.runner.Run(cmd.Context(), pipeline.Request{
				SourcePath: source,
				OutputPath: target,
				Language:   lang,
			})
			if err != nil {
				return fmt.Errorf("translate %s: %w", filepath.Base(source), err)
			}
			printResults(cmd.OutOrStdout(), []pipeline.Result{res})
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Target language code")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (defaults to <base>.<lang><ext> next to the source)")
	return cmd
}

func newTranslateAllCommand(ctx *commandContext) *cobra.Command {
	var langs []string
	var skipExisting bool

	cmd := &cobra.Command{
		Use:   "translate-all <subtitle-file>",
		Short: "Translate one subtitle file into every configured language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve source path: %w", err)
			}
			sess, err := ctx.openSession("translate-all")
			if err != nil {
				return err
			}
			defer sess.close()

			targets := langs
			if len(targets) == 0 {
				targets = sess.cfg.Translation.TargetLanguages
			}
			skip := skipExisting || sess.cfg.Translation.SkipExisting
			results, runErr := sess.runner.RunAll(cmd.Context(), source, targets, pipeline.RunAllOptions{SkipExisting: skip})
			if len(results) > 0 {
				printResults(cmd.OutOrStdout(), results)
			}
			if runErr != nil {
				return fmt.Errorf("translate %s: %w", filepath.Base(source), runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&langs, "lang", "l", nil, "Target language codes (defaults to translation.target_languages)")
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "Skip languages whose output file already exists")
	return cmd
}

func printResults(out io.Writer, results []pipeline.Result) {
	view := newTableView(
		column{title: "Lang"},
		column{title: "Backend"},
		column{title: "State"},
		column{title: "Segments", count: true},
		column{title: "Translated", count: true},
		column{title: "Kept", count: true},
		column{title: "Time", count: true},
		column{title: "Output", wide: true},
	)
	var translated, kept int
	var elapsed time.Duration
	for _, res := range results {
		backend := res.Backend
		if backend == "" {
			backend = "-"
		}
		view.row(res.Language, backend, string(res.State), res.Segments, res.Translated, res.Failed,
			formatDuration(res.Duration), res.OutputPath)
		translated += res.Translated
		kept += res.Failed
		elapsed += res.Duration
	}
	if len(results) > 1 {
		view.footer("Total", "", "", "", translated, kept, formatDuration(elapsed), "")
	}
	fmt.Fprintln(out, view.render())
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(100 * time.Millisecond).String()
}
