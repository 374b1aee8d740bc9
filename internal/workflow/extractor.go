package workflow

import (
	"errors"
	"log/slog"
	"time"

	"hdrgroup/internal/config"
	"hdrgroup/internal/extract"
	"hdrgroup/internal/extract/exiftool"
	"hdrgroup/internal/logging"
	"hdrgroup/internal/metacache"
)

// NewExtractor builds the configured extraction backend: the native decoder or
// exiftool, spread over cfg.Scan.Workers goroutines.
func NewExtractor(cfg *config.Config) extract.Extractor {
	var base extract.Extractor
	switch cfg.Metadata.Source {
	case config.SourceExiftool:
		base = exiftool.New(
			cfg.Metadata.ExiftoolBinary,
			cfg.Metadata.BatchSize,
			time.Duration(cfg.Metadata.TimeoutSeconds)*time.Second,
		)
	default:
		base = extract.NewDecoder()
	}
	return extract.Concurrent(base, cfg.Scan.Workers)
}

// openCache opens the metadata cache when enabled. A cache that cannot be
// opened is logged and skipped; the run proceeds uncached.
func openCache(cfg *config.Config, logger *slog.Logger) *metacache.Cache {
	if !cfg.Cache.Enabled || cfg.Cache.Path == "" {
		return nil
	}
	cache, err := metacache.Open(cfg.Cache.Path, logger)
	if err == nil {
		return cache
	}

	hint := "check cache.path permissions"
	switch {
	case errors.Is(err, metacache.ErrLocked):
		hint = "another hdrgroup run is using the cache"
	case errors.Is(err, metacache.ErrSchemaMismatch):
		hint = "run 'hdrgroup cache clear'"
	}
	logging.WarnWithContext(logging.NewComponentLogger(logger, "metacache"), "metadata cache unavailable", "cache_unavailable",
		logging.String("path", cfg.Cache.Path),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, hint),
		logging.String(logging.FieldImpact, "metadata is read from every file"),
	)
	return nil
}
