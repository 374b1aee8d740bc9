package grouping

import (
	"errors"
	"fmt"
	"time"
)

// Options holds the admission thresholds. The zero value admits only exact
// matches; use DefaultOptions for the standard bracket tolerances.
type Options struct {
	// TimeTolerance is the largest gap allowed between consecutive frames.
	TimeTolerance time.Duration
	// DimensionTolerance is the largest width or height difference in pixels.
	DimensionTolerance int
	// ExposureJumpLimit is the exposure difference (EV) above which a frame
	// taken more than ExposureJumpMinGap after its predecessor starts a new group.
	ExposureJumpLimit  float64
	ExposureJumpMinGap time.Duration
	FocalTolerance     float64
	ApertureTolerance  float64
}

// DefaultOptions returns the standard thresholds: 15 s, 20 px, 2.5 EV with a
// 5 s exposure-jump gate, 0.5 mm focal length and 0.2 aperture stops.
func DefaultOptions() Options {
	return Options{
		TimeTolerance:      15 * time.Second,
		DimensionTolerance: 20,
		ExposureJumpLimit:  2.5,
		ExposureJumpMinGap: 5 * time.Second,
		FocalTolerance:     0.5,
		ApertureTolerance:  0.2,
	}
}

// Validate rejects negative thresholds.
func (o Options) Validate() error {
	var errs []error
	if o.TimeTolerance < 0 {
		errs = append(errs, fmt.Errorf("time tolerance %v is negative", o.TimeTolerance))
	}
	if o.DimensionTolerance < 0 {
		errs = append(errs, fmt.Errorf("dimension tolerance %d is negative", o.DimensionTolerance))
	}
	if o.ExposureJumpLimit < 0 {
		errs = append(errs, fmt.Errorf("exposure jump limit %v is negative", o.ExposureJumpLimit))
	}
	if o.ExposureJumpMinGap < 0 {
		errs = append(errs, fmt.Errorf("exposure jump gap %v is negative", o.ExposureJumpMinGap))
	}
	if o.FocalTolerance < 0 {
		errs = append(errs, fmt.Errorf("focal tolerance %v is negative", o.FocalTolerance))
	}
	if o.ApertureTolerance < 0 {
		errs = append(errs, fmt.Errorf("aperture tolerance %v is negative", o.ApertureTolerance))
	}
	return errors.Join(errs...)
}
