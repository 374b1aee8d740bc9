package workflow

import (
	"time"

	"hdrgroup/internal/config"
	"hdrgroup/internal/grouping"
)

// OptionsFromConfig converts the [grouping] section into clustering options.
func OptionsFromConfig(cfg *config.Config) grouping.Options {
	if cfg == nil {
		return grouping.DefaultOptions()
	}
	g := cfg.Grouping
	return grouping.Options{
		TimeTolerance:      seconds(g.TimeToleranceSeconds),
		DimensionTolerance: g.DimensionTolerance,
		ExposureJumpLimit:  g.ExposureJumpLimit,
		ExposureJumpMinGap: seconds(g.ExposureJumpGapSeconds),
		FocalTolerance:     g.FocalTolerance,
		ApertureTolerance:  g.ApertureTolerance,
	}
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
