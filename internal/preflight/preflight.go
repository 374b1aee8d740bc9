package preflight

import (
	"context"
	"path/filepath"

	"hdrgroup/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if cfg.Cache.Enabled && cfg.Cache.Path != "" {
		results = append(results, CheckDirectoryAccess("Cache directory", filepath.Dir(cfg.Cache.Path)))
		results = append(results, CheckCache(ctx, cfg.Cache.Path))
	}

	if cfg.Logging.File != "" {
		results = append(results, CheckDirectoryAccess("Log directory", filepath.Dir(cfg.Logging.File)))
	}

	if cfg.Metadata.Source == config.SourceExiftool {
		for _, status := range CheckSystemDeps(ctx, cfg) {
			results = append(results, statusResult(status.Name, status.Available, status.Command, status.Version, status.Detail))
		}
	}

	return results
}

func statusResult(name string, available bool, command, version, detail string) Result {
	if !available {
		return Result{Name: name, Detail: detail}
	}
	summary := command
	if version != "" {
		summary += " (version " + version + ")"
	}
	if detail != "" {
		summary += " (" + detail + ")"
	}
	return Result{Name: name, Passed: true, Detail: summary}
}
