package config

const (
	defaultConfigPath        = "~/.config/hdrgroup/config.toml"
	projectConfigName        = "hdrgroup.toml"
	defaultTimeTolerance     = 15
	defaultDimensionTol      = 20
	defaultExposureJumpLimit = 2.5
	defaultExposureJumpGap   = 5
	defaultFocalTolerance    = 0.5
	defaultApertureTolerance = 0.2
	defaultWorkers           = 1
	defaultMetadataSource    = SourceNative
	defaultExiftoolBinary    = "exiftool"
	defaultExiftoolBatch     = 64
	defaultExiftoolTimeout   = 120
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Metadata sources.
const (
	SourceNative   = "native"
	SourceExiftool = "exiftool"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Grouping: Grouping{
			TimeToleranceSeconds:   defaultTimeTolerance,
			DimensionTolerance:     defaultDimensionTol,
			ExposureJumpLimit:      defaultExposureJumpLimit,
			ExposureJumpGapSeconds: defaultExposureJumpGap,
			FocalTolerance:         defaultFocalTolerance,
			ApertureTolerance:      defaultApertureTolerance,
		},
		Scan: Scan{
			Extensions: []string{".jpg", ".jpeg"},
			Workers:    defaultWorkers,
		},
		Metadata: Metadata{
			Source:         defaultMetadataSource,
			ExiftoolBinary: defaultExiftoolBinary,
			BatchSize:      defaultExiftoolBatch,
			TimeoutSeconds: defaultExiftoolTimeout,
		},
		Cache: Cache{
			Path: defaultCachePath(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
