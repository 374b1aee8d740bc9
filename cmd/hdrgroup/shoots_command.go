package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hdrgroup/internal/preflight"
)

func newShootsCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOutput bool
		explain    bool
		thresholds thresholdFlags
	)

	cmd := &cobra.Command{
		Use:   "shoots <parent>",
		Short: "Group every shoot directory below a parent folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent := args[0]
			if check := preflight.CheckReadableDirectory("Shoots directory", parent); !check.Passed {
				return errors.New(check.Detail)
			}
			runner, err := newRunner(cmd, ctx, &thresholds)
			if err != nil {
				return err
			}
			reports, runErr := runner.RunShoots(cmd.Context(), parent)

			if jsonOutput {
				docs := make([]reportJSON, 0, len(reports))
				for _, report := range reports {
					docs = append(docs, toReportJSON(report, explain))
				}
				if err := writeJSON(cmd, docs); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				if len(reports) == 0 && runErr == nil {
					fmt.Fprintf(out, "No shoot directories found in %s\n", parent)
				}
				for i, report := range reports {
					if i > 0 {
						fmt.Fprintln(out)
					}
					printReport(out, report, explain)
				}
			}
			if runErr != nil {
				return fmt.Errorf("some shoots failed: %w", runErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print one JSON report per shoot")
	cmd.Flags().BoolVar(&explain, "explain", false, "Include every bracket decision")
	thresholds.register(cmd.Flags())
	return cmd
}
