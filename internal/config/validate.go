package config

import (
	"errors"
	"fmt"
)

// ErrInvalid marks configuration validation failures.
var ErrInvalid = errors.New("invalid configuration")

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGrouping(); err != nil {
		return err
	}
	if err := c.validateMetadata(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateGrouping() error {
	g := c.Grouping
	if err := ensureNonNegative(map[string]float64{
		"grouping.time_tolerance_seconds":    g.TimeToleranceSeconds,
		"grouping.dimension_tolerance":       float64(g.DimensionTolerance),
		"grouping.exposure_jump_limit":       g.ExposureJumpLimit,
		"grouping.exposure_jump_gap_seconds": g.ExposureJumpGapSeconds,
		"grouping.focal_tolerance":           g.FocalTolerance,
		"grouping.aperture_tolerance":        g.ApertureTolerance,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMetadata() error {
	switch c.Metadata.Source {
	case SourceNative, SourceExiftool:
	default:
		return fmt.Errorf("%w: metadata.source must be %q or %q, got %q", ErrInvalid, SourceNative, SourceExiftool, c.Metadata.Source)
	}
	if c.Scan.Workers > 64 {
		return fmt.Errorf("%w: scan.workers must be at most 64", ErrInvalid)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("%w: logging.level %q is not one of debug, info, warn, error", ErrInvalid, c.Logging.Level)
	}
}

func ensureNonNegative(values map[string]float64) error {
	for key, value := range values {
		if value < 0 {
			return fmt.Errorf("%w: %s must be >= 0", ErrInvalid, key)
		}
	}
	return nil
}
