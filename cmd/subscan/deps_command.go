package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subscan/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			report := deps.Check(cfg)
			out := cmd.OutOrStdout()

			rows := make([][]string, 0, len(report.Binaries))
			for _, status := range report.Binaries {
				state := "ok"
				detail := status.Detail
				if !status.Available {
					state = "missing"
				}
				rows = append(rows, []string{status.Name, status.Command, state, detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Tool", "Command", "Status", "Detail"}, rows))

			if report.Models.Installed {
				fmt.Fprintf(out, "OCR models: installed (%d language(s))\n", len(report.Models.AvailableLanguages))
			} else {
				fmt.Fprintln(out, report.Models.Instructions)
			}

			if !report.Ready() {
				return fmt.Errorf("missing dependencies; install the tools above before running jobs")
			}
			return nil
		},
	}
}
