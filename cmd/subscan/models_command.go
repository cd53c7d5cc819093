package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subscan/internal/ocr"
)

func newModelsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "Show installed OCR models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			status := ocr.CheckModels(cfg.OCR.ModelsDir)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Models directory: %s\n\n", status.ModelsDir)

			if !status.Installed {
				fmt.Fprintln(out, status.Instructions)
				for _, missing := range status.MissingModels {
					fmt.Fprintf(out, "  missing: %s\n", missing)
				}
				return nil
			}

			rows := make([][]string, 0, len(status.AvailableLanguages))
			for _, lang := range status.AvailableLanguages {
				rows = append(rows, []string{lang, ocr.LanguageDisplayName(lang)})
			}
			fmt.Fprintln(out, renderTable([]string{"Language", "Name"}, rows))
			return nil
		},
	}
}
