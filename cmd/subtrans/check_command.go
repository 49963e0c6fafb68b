package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"subtrans/internal/deps"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify external tools required by the configured backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			for _, status := range statuses {
				kind := statusOK
				message := status.Path
				if !status.Available {
					kind = statusError
					message = status.Detail
					if status.Optional {
						kind = statusWarn
						message += " (optional)"
					}
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, message, colorize))
				if status.Description != "" {
					fmt.Fprintf(out, "%s%-*s %s\n", statusIndent, statusLabelWidth, "", status.Description)
				}
			}

			for _, line := range renderSectionHeader("Remote", colorize) {
				fmt.Fprintln(out, line)
			}
			mode := "keyless endpoint"
			if cfg.Google.APIKey != "" {
				mode = "Cloud Translation API (key set)"
			}
			fmt.Fprintln(out, renderStatusLine("Google Translate", statusInfo, mode, colorize))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return errors.New("required dependencies are missing")
			}
			return nil
		},
	}
}
