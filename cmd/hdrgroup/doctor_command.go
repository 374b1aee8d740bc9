package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hdrgroup/internal/config"
	"hdrgroup/internal/deps"
	"hdrgroup/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, helper binaries, and writable paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			var lines []string
			lines = append(lines, renderSectionHeader("Configuration", colorize)...)
			lines = append(lines, configLines(ctx, cfg, colorize)...)

			statuses := preflight.CheckSystemDeps(cmd.Context(), cfg)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			lines = append(lines, dependencyLines(statuses, colorize)...)

			results := preflight.RunAll(cmd.Context(), cfg)
			envResults := make([]preflight.Result, 0, len(results))
			for _, r := range results {
				if r.Name != "exiftool" {
					envResults = append(envResults, r)
				}
			}
			if len(envResults) > 0 {
				lines = append(lines, "")
				lines = append(lines, renderSectionHeader("Environment", colorize)...)
				for _, r := range envResults {
					kind := statusOK
					if !r.Passed {
						kind = statusError
					}
					lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
				}
			}

			writeLines(out, lines)

			failed := 0
			for _, status := range statuses {
				if !status.Available && !status.Optional {
					failed++
				}
			}
			for _, r := range envResults {
				if !r.Passed {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("doctor found %d %s", failed, plural(failed, "problem", "problems"))
			}
			return nil
		},
	}
}

func configLines(ctx *commandContext, cfg *config.Config, colorize bool) []string {
	path := ctx.configPath
	kind := statusOK
	if !ctx.configSeen {
		kind = statusInfo
		path += " (not found, defaults in use)"
	}
	cacheDetail := "disabled"
	if cfg.Cache.Enabled {
		cacheDetail = cfg.Cache.Path
	}
	return []string{
		renderStatusLine("Config file", kind, path, colorize),
		renderStatusLine("Metadata source", statusInfo, cfg.Metadata.Source, colorize),
		renderStatusLine("Cache", statusInfo, cacheDetail, colorize),
		renderStatusLine("Workers", statusInfo, fmt.Sprintf("%d", cfg.Scan.Workers), colorize),
	}
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses))
	for _, status := range statuses {
		switch {
		case status.Available:
			detail := status.Command
			if status.Version != "" {
				detail += " (version " + status.Version + ")"
			}
			if status.Detail != "" {
				detail += " (" + status.Detail + ")"
			}
			lines = append(lines, renderStatusLine(status.Name, statusOK, detail, colorize))
		case status.Optional:
			lines = append(lines, renderStatusLine(status.Name, statusWarn, status.Detail+" (optional)", colorize))
		default:
			lines = append(lines, renderStatusLine(status.Name, statusError, status.Detail, colorize))
		}
	}
	return lines
}

func writeLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}
