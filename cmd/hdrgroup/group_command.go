package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"hdrgroup/internal/grouping"
	"hdrgroup/internal/preflight"
	"hdrgroup/internal/workflow"
)

// thresholdFlags holds command-line overrides of the [grouping] section.
type thresholdFlags struct {
	timeTolerance      time.Duration
	dimensionTolerance int
	exposureJumpLimit  float64
	exposureJumpGap    time.Duration
}

func (f *thresholdFlags) register(flags *pflag.FlagSet) {
	flags.DurationVar(&f.timeTolerance, "time-tolerance", 0, "Maximum gap between consecutive frames (default from config, 15s)")
	flags.IntVar(&f.dimensionTolerance, "dimension-tolerance", 0, "Maximum width/height difference in pixels (default from config, 20)")
	flags.Float64Var(&f.exposureJumpLimit, "exposure-jump-limit", 0, "Exposure difference in EV that splits a bracket (default from config, 2.5)")
	flags.DurationVar(&f.exposureJumpGap, "exposure-jump-gap", 0, "Minimum gap for an exposure jump to split (default from config, 5s)")
}

// apply overlays the flags that were set explicitly.
func (f *thresholdFlags) apply(flags *pflag.FlagSet, opts grouping.Options) grouping.Options {
	if flags.Changed("time-tolerance") {
		opts.TimeTolerance = f.timeTolerance
	}
	if flags.Changed("dimension-tolerance") {
		opts.DimensionTolerance = f.dimensionTolerance
	}
	if flags.Changed("exposure-jump-limit") {
		opts.ExposureJumpLimit = f.exposureJumpLimit
	}
	if flags.Changed("exposure-jump-gap") {
		opts.ExposureJumpMinGap = f.exposureJumpGap
	}
	return opts
}

func newRunner(cmd *cobra.Command, ctx *commandContext, thresholds *thresholdFlags) (*workflow.Runner, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	opts := thresholds.apply(cmd.Flags(), workflow.OptionsFromConfig(cfg))
	return workflow.NewRunner(cfg, logger, workflow.WithGroupingOptions(opts))
}

func newGroupCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOutput bool
		explain    bool
		thresholds thresholdFlags
	)

	cmd := &cobra.Command{
		Use:   "group <dir>",
		Short: "Group the bracketed images of one shoot directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if check := preflight.CheckReadableDirectory("Shoot directory", dir); !check.Passed {
				return errors.New(check.Detail)
			}
			runner, err := newRunner(cmd, ctx, &thresholds)
			if err != nil {
				return err
			}
			report, err := runner.Run(cmd.Context(), dir)
			if err != nil {
				return fmt.Errorf("group %s: %w", dir, err)
			}
			if jsonOutput {
				return writeJSON(cmd, toReportJSON(report, explain))
			}
			printReport(cmd.OutOrStdout(), report, explain)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the group mapping and run report as JSON")
	cmd.Flags().BoolVar(&explain, "explain", false, "Include every bracket decision")
	thresholds.register(cmd.Flags())
	return cmd
}
