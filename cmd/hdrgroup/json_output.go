package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"hdrgroup/internal/grouping"
	"hdrgroup/internal/workflow"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type decisionJSON struct {
	Candidate    string  `json:"candidate"`
	Previous     string  `json:"previous,omitempty"`
	TimeDiffSecs float64 `json:"time_diff_seconds"`
	ExposureDiff float64 `json:"exposure_diff"`
	SameMeta     bool    `json:"same_meta"`
	Admitted     bool    `json:"admitted"`
	Reason       string  `json:"reason"`
	Group        int     `json:"group"`
}

type reportJSON struct {
	RunID      string                         `json:"run_id"`
	Dir        string                         `json:"dir"`
	Extractor  string                         `json:"extractor"`
	Scanned    int                            `json:"scanned"`
	Grouped    int                            `json:"grouped"`
	Groups     map[int][]string               `json:"groups"`
	Skipped    map[workflow.RejectionKind]int `json:"skipped"`
	Rejected   []workflow.Rejection           `json:"rejected"`
	Decisions  []decisionJSON                 `json:"decisions,omitempty"`
	DurationMS int64                          `json:"duration_ms"`
}

func toReportJSON(report workflow.Report, explain bool) reportJSON {
	out := reportJSON{
		RunID:      report.RunID,
		Dir:        report.Dir,
		Extractor:  report.Extractor,
		Scanned:    report.Scanned,
		Grouped:    report.Grouped(),
		Groups:     report.Result.Map(),
		Skipped:    report.Skipped(),
		Rejected:   report.Rejected,
		DurationMS: report.Duration.Milliseconds(),
	}
	if out.Rejected == nil {
		out.Rejected = []workflow.Rejection{}
	}
	if explain {
		out.Decisions = toDecisionsJSON(report.Result.Decisions)
	}
	return out
}

func toDecisionsJSON(decisions []grouping.Decision) []decisionJSON {
	out := make([]decisionJSON, 0, len(decisions))
	for _, d := range decisions {
		out = append(out, decisionJSON{
			Candidate:    d.Candidate,
			Previous:     d.Previous,
			TimeDiffSecs: d.TimeDiff.Seconds(),
			ExposureDiff: d.ExposureDiff,
			SameMeta:     d.SameMeta,
			Admitted:     d.Admitted,
			Reason:       string(d.Reason),
			Group:        d.Group,
		})
	}
	return out
}
