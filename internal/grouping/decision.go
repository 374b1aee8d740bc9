package grouping

import (
	"math"
	"time"

	"hdrgroup/internal/metadata"
)

// Reason explains a grouping decision.
type Reason string

const (
	ReasonOpened           Reason = "opened"
	ReasonWithinTolerance  Reason = "within_tolerance"
	ReasonExposureJump     Reason = "exposure_jump"
	ReasonTimeGap          Reason = "time_gap"
	ReasonMetadataMismatch Reason = "metadata_mismatch"
)

// Decision records the comparison of a candidate with the last admitted record
// of the open group.
type Decision struct {
	Candidate            string        `json:"candidate"`
	Previous             string        `json:"previous,omitempty"`
	TimeDiff             time.Duration `json:"time_diff"`
	ExposureDiff         float64       `json:"exposure_diff"`
	SameMeta             bool          `json:"same_meta"`
	ExposureJumpConflict bool          `json:"exposure_jump_conflict"`
	Admitted             bool          `json:"admitted"`
	Reason               Reason        `json:"reason"`
	// Group is the number of the group the candidate ended up in.
	Group int `json:"group"`
}

// Compare evaluates the admission rule for next against prev.
func Compare(prev, next metadata.Record, opts Options) Decision {
	timeDiff := next.Taken.Sub(prev.Taken)
	if timeDiff < 0 {
		timeDiff = -timeDiff
	}
	exposureDiff := math.Abs(next.ExposureCompensation - prev.ExposureCompensation)

	sameMeta := math.Abs(next.FocalLength-prev.FocalLength) <= opts.FocalTolerance &&
		math.Abs(next.Aperture-prev.Aperture) <= opts.ApertureTolerance &&
		absInt(next.Width-prev.Width) <= opts.DimensionTolerance &&
		absInt(next.Height-prev.Height) <= opts.DimensionTolerance

	conflict := exposureDiff > opts.ExposureJumpLimit && timeDiff > opts.ExposureJumpMinGap
	withinTime := timeDiff <= opts.TimeTolerance

	d := Decision{
		Candidate:            next.ID,
		Previous:             prev.ID,
		TimeDiff:             timeDiff,
		ExposureDiff:         exposureDiff,
		SameMeta:             sameMeta,
		ExposureJumpConflict: conflict,
		Admitted:             withinTime && sameMeta && !conflict,
	}
	switch {
	case d.Admitted:
		d.Reason = ReasonWithinTolerance
	case conflict:
		d.Reason = ReasonExposureJump
	case !withinTime:
		d.Reason = ReasonTimeGap
	default:
		d.Reason = ReasonMetadataMismatch
	}
	return d
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
