package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"hdrgroup/internal/grouping"
	"hdrgroup/internal/workflow"
)

const takenLayout = "2006-01-02 15:04:05"

func printReport(out io.Writer, report workflow.Report, explain bool) {
	groups := report.Result.Groups
	fmt.Fprintf(out, "Shoot: %s\n", report.Dir)
	fmt.Fprintf(out, "Images: %d scanned, %d grouped into %d %s, %d skipped\n",
		report.Scanned, report.Grouped(), len(groups), plural(len(groups), "group", "groups"), len(report.Rejected))

	if len(groups) > 0 {
		fmt.Fprintln(out, renderTable(
			[]string{"Group", "Frames", "Taken", "Exposure", "Members"},
			groupRows(groups),
			[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft},
		))
	}

	if len(report.Rejected) > 0 {
		fmt.Fprintf(out, "Skipped: %s\n", skippedSummary(report.Skipped()))
		rows := make([][]string, 0, len(report.Rejected))
		for _, rej := range report.Rejected {
			rows = append(rows, []string{rej.ID, string(rej.Kind), rej.Error})
		}
		fmt.Fprintln(out, renderTable([]string{"Image", "Reason", "Detail"}, rows, nil))
	}

	if explain && len(report.Result.Decisions) > 0 {
		fmt.Fprintln(out, "Decisions:")
		fmt.Fprintln(out, renderTable(
			[]string{"Image", "Previous", "Δt", "ΔEV", "Same optics", "Result", "Reason", "Group"},
			decisionRows(report.Result.Decisions),
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft, alignLeft, alignRight},
		))
	}
}

func groupRows(groups []grouping.Group) [][]string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		first := g.Members[0]
		low, high := first.ExposureCompensation, first.ExposureCompensation
		for _, rec := range g.Members[1:] {
			low = min(low, rec.ExposureCompensation)
			high = max(high, rec.ExposureCompensation)
		}
		exposure := fmt.Sprintf("%+.1f EV", low)
		if high != low {
			exposure = fmt.Sprintf("%+.1f .. %+.1f EV", low, high)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", g.Number),
			fmt.Sprintf("%d", len(g.Members)),
			first.Taken.Format(takenLayout),
			exposure,
			strings.Join(g.IDs(), ", "),
		})
	}
	return rows
}

func decisionRows(decisions []grouping.Decision) [][]string {
	rows := make([][]string, 0, len(decisions))
	for _, d := range decisions {
		result := "split"
		if d.Admitted {
			result = "admitted"
		}
		if d.Reason == grouping.ReasonOpened {
			rows = append(rows, []string{d.Candidate, "", "", "", "", "opened", string(d.Reason), fmt.Sprintf("%d", d.Group)})
			continue
		}
		rows = append(rows, []string{
			d.Candidate,
			d.Previous,
			d.TimeDiff.String(),
			fmt.Sprintf("%.2f", d.ExposureDiff),
			yesNo(d.SameMeta),
			result,
			string(d.Reason),
			fmt.Sprintf("%d", d.Group),
		})
	}
	return rows
}

func skippedSummary(counts map[workflow.RejectionKind]int) string {
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, fmt.Sprintf("%d %s", counts[workflow.RejectionKind(kind)], kind))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
