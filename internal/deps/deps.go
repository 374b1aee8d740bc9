// Package deps reports the external binaries hdrgroup can delegate to.
package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"hdrgroup/internal/config"
)

// Requirement defines an external binary hdrgroup may call.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	// VersionArgs, when set, are passed to the binary to read its version.
	VersionArgs []string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Version     string
	Detail      string
}

const versionTimeout = 5 * time.Second

// Requirements lists the binaries relevant to cfg. exiftool is mandatory only
// when it is the selected metadata source.
func Requirements(cfg *config.Config) []Requirement {
	binary := "exiftool"
	optional := true
	if cfg != nil {
		if b := strings.TrimSpace(cfg.Metadata.ExiftoolBinary); b != "" {
			binary = b
		}
		optional = cfg.Metadata.Source != config.SourceExiftool
	}
	return []Requirement{{
		Name:        "exiftool",
		Command:     binary,
		Description: "Reads capture metadata from raw and non-JPEG formats",
		Optional:    optional,
		VersionArgs: []string{"-ver"},
	}}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		if len(req.VersionArgs) > 0 {
			version, err := probeVersion(ctx, resolved, req.VersionArgs)
			if err != nil {
				status.Detail = fmt.Sprintf("version check failed: %v", err)
			}
			status.Version = version
		}
		results = append(results, status)
	}
	return results
}

func probeVersion(ctx context.Context, binary string, args []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, binary, args...).Output()
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line), nil
}
