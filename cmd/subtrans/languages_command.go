package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subtrans/internal/config"
	"subtrans/internal/language"
)

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported target languages and their routing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			configured := make(map[string]bool, len(cfg.Translation.TargetLanguages))
			for _, code := range cfg.Translation.TargetLanguages {
				configured[code] = true
			}

			view := newTableView(
				column{title: "Code"},
				column{title: "Language"},
				column{title: "Backend"},
				column{title: "Model / Remote"},
				column{title: "Script"},
				column{title: "Configured"},
			)
			for _, target := range language.Supported() {
				backend := cfg.BackendFor(target.Code)
				detail := target.RemoteCode
				if backend == config.BackendOllama {
					detail = cfg.ModelFor(target.Code)
				}
				view.row(target.Code, target.Name, backend, detail, target.Script.String(), yesNo(configured[target.Code]))
			}
			fmt.Fprintln(cmd.OutOrStdout(), view.render())
			return nil
		},
	}
}
