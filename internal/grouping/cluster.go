package grouping

import (
	"context"
	"log/slog"
	"slices"

	"hdrgroup/internal/logging"
	"hdrgroup/internal/metadata"
)

const decisionType = "bracket_admission"

// Group is a sealed bracket. Members keep their capture order.
type Group struct {
	Number  int               `json:"number"`
	Members []metadata.Record `json:"members"`
}

// IDs returns the member identifiers in order.
func (g Group) IDs() []string {
	ids := make([]string, len(g.Members))
	for i, rec := range g.Members {
		ids[i] = rec.ID
	}
	return ids
}

// Result is the outcome of a clustering pass.
type Result struct {
	Groups    []Group    `json:"groups"`
	Decisions []Decision `json:"decisions"`
}

// Map returns group number to member identifiers. Callers own the returned map.
func (r Result) Map() map[int][]string {
	out := make(map[int][]string, len(r.Groups))
	for _, g := range r.Groups {
		out[g.Number] = g.IDs()
	}
	return out
}

// Records returns the admitted records in group order, which is also sorted
// capture order.
func (r Result) Records() []metadata.Record {
	var out []metadata.Record
	for _, g := range r.Groups {
		out = append(out, g.Members...)
	}
	return out
}

// Cluster groups records into brackets. The input slice is not modified and
// may be in any order; records with equal timestamps keep their input order.
func Cluster(records []metadata.Record, opts Options, logger *slog.Logger) Result {
	logger = logging.NewComponentLogger(logger, "grouping")

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b metadata.Record) int {
		return a.Taken.Compare(b.Taken)
	})

	var (
		result  Result
		current []metadata.Record
	)
	seal := func() {
		if len(current) == 0 {
			return
		}
		number := len(result.Groups) + 1
		result.Groups = append(result.Groups, Group{Number: number, Members: current})
		logger.Debug("group sealed",
			logging.Int("group", number),
			logging.Int("size", len(current)),
			logging.String("first", current[0].ID),
			logging.String("last", current[len(current)-1].ID),
		)
		current = nil
	}

	for _, rec := range sorted {
		if len(current) == 0 {
			current = append(current, rec)
			result.Decisions = append(result.Decisions, Decision{
				Candidate: rec.ID,
				Admitted:  true,
				Reason:    ReasonOpened,
				Group:     len(result.Groups) + 1,
			})
			continue
		}

		last := current[len(current)-1]
		d := Compare(last, rec, opts)
		logDecision(logger, d, last, rec)
		if !d.Admitted {
			seal()
		}
		current = append(current, rec)
		d.Group = len(result.Groups) + 1
		result.Decisions = append(result.Decisions, d)
	}
	seal()

	logger.Info("grouping complete",
		logging.Int("records", len(sorted)),
		logging.Int("groups", len(result.Groups)),
	)
	return result
}

func logDecision(logger *slog.Logger, d Decision, last, rec metadata.Record) {
	result, level := "split", slog.LevelInfo
	if d.Admitted {
		result, level = "admitted", slog.LevelDebug
	}
	attrs := logging.DecisionAttrs(decisionType, result, string(d.Reason))
	attrs = append(attrs,
		logging.String(logging.FieldImage, rec.ID),
		logging.String("previous", last.ID),
		logging.Float64("time_diff_seconds", d.TimeDiff.Seconds()),
		logging.Float64("exposure_diff", d.ExposureDiff),
		logging.Bool("same_meta", d.SameMeta),
		logging.Bool("exposure_jump_conflict", d.ExposureJumpConflict),
		logging.String("focal", formatPair(rec.FocalLength, last.FocalLength)),
		logging.String("aperture", formatPair(rec.Aperture, last.Aperture)),
		logging.String("dimensions", formatDims(rec, last)),
	)
	logger.Log(context.Background(), level, "bracket decision", logging.Args(attrs...)...)
}
