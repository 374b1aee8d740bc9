package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"hdrgroup/internal/config"
	"hdrgroup/internal/extract"
	"hdrgroup/internal/grouping"
	"hdrgroup/internal/logging"
	"hdrgroup/internal/metacache"
	"hdrgroup/internal/metadata"
	"hdrgroup/internal/scanner"
)

// Runner groups shoot directories according to a configuration.
type Runner struct {
	cfg       *config.Config
	base      *slog.Logger
	logger    *slog.Logger
	options   grouping.Options
	extractor extract.Extractor
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithGroupingOptions replaces the thresholds derived from configuration.
func WithGroupingOptions(opts grouping.Options) RunnerOption {
	return func(r *Runner) {
		r.options = opts
	}
}

// WithExtractor bypasses the configured backend and cache.
func WithExtractor(ext extract.Extractor) RunnerOption {
	return func(r *Runner) {
		r.extractor = ext
	}
}

// NewRunner validates the grouping thresholds and returns a Runner.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...RunnerOption) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("workflow: config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Runner{
		cfg:     cfg,
		base:    logger,
		logger:  logging.NewComponentLogger(logger, "workflow"),
		options: OptionsFromConfig(cfg),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.options.Validate(); err != nil {
		return nil, fmt.Errorf("grouping options: %w", err)
	}
	return r, nil
}

// Run groups the images in dir.
func (r *Runner) Run(ctx context.Context, dir string) (Report, error) {
	ext, closeCache := r.openExtractor()
	defer closeCache()
	return r.run(ctx, dir, ext)
}

// RunShoots groups every immediate sub-directory of parent in sorted order. A
// failing shoot is logged and does not stop the batch; all failures are joined
// into the returned error.
func (r *Runner) RunShoots(ctx context.Context, parent string) ([]Report, error) {
	shoots, err := scanner.Shoots(parent)
	if err != nil {
		return nil, err
	}
	ext, closeCache := r.openExtractor()
	defer closeCache()

	reports := make([]Report, 0, len(shoots))
	var errs []error
	for _, dir := range shoots {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		report, err := r.run(ctx, dir, ext)
		if err != nil {
			r.logger.Error("shoot failed",
				logging.String(logging.FieldDir, dir),
				logging.Error(err),
				logging.String(logging.FieldEventType, "shoot_failed"),
			)
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(dir), err))
			continue
		}
		reports = append(reports, report)
	}
	return reports, errors.Join(errs...)
}

func (r *Runner) openExtractor() (extract.Extractor, func()) {
	if r.extractor != nil {
		return r.extractor, func() {}
	}
	ext := NewExtractor(r.cfg)
	cache := openCache(r.cfg, r.base)
	if cache == nil {
		return ext, func() {}
	}
	return metacache.Wrap(ext, cache), func() {
		if err := cache.Close(); err != nil {
			r.logger.Warn("failed to close metadata cache", logging.Error(err))
		}
	}
}

func (r *Runner) run(ctx context.Context, dir string, ext extract.Extractor) (Report, error) {
	start := time.Now()
	report := Report{RunID: uuid.NewString(), Dir: dir, Extractor: ext.Name()}
	base := logging.WithRunID(r.base, report.RunID).With(logging.String(logging.FieldDir, dir))
	logger := logging.NewComponentLogger(base, "workflow")

	paths, err := scanner.Scan(dir, scanner.Options{
		Extensions: r.cfg.Scan.Extensions,
		Recursive:  r.cfg.Scan.Recursive,
	})
	if err != nil {
		return report, err
	}
	report.Scanned = len(paths)
	logger.Info("shoot scanned",
		logging.Int("images", len(paths)),
		logging.String("extractor", ext.Name()),
	)

	var items []extract.Item
	if len(paths) > 0 {
		items, err = ext.Extract(ctx, paths)
		if err != nil {
			return report, fmt.Errorf("extract metadata: %w", err)
		}
	}

	records := make([]metadata.Record, 0, len(items))
	for _, item := range items {
		id := imageID(dir, item.Path)
		rec, err := normalizeItem(id, item)
		if err != nil {
			rej := newRejection(id, err)
			report.Rejected = append(report.Rejected, rej)
			logging.WarnWithContext(logger, "image skipped", "image_rejected",
				logging.String(logging.FieldImage, id),
				logging.String("reason", string(rej.Kind)),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the file's EXIF capture tags"),
				logging.String(logging.FieldImpact, "image is excluded from grouping"),
			)
			continue
		}
		if len(rec.Defaulted) > 0 {
			logger.Debug("metadata defaulted",
				logging.String(logging.FieldImage, id),
				logging.Any("fields", rec.Defaulted),
			)
		}
		records = append(records, rec)
	}

	report.Result = grouping.Cluster(records, r.options, base)
	report.Duration = time.Since(start)
	logger.Info("shoot grouped",
		logging.Int("groups", len(report.Result.Groups)),
		logging.Int("grouped", report.Grouped()),
		logging.Int("skipped", len(report.Rejected)),
		logging.Duration("duration", report.Duration),
	)
	return report, nil
}

func normalizeItem(id string, item extract.Item) (metadata.Record, error) {
	if item.Err != nil {
		return metadata.Record{}, fmt.Errorf("%w: %w", metadata.ErrMetadataAbsent, item.Err)
	}
	return metadata.Normalize(id, item.Tags)
}

// imageID names an image by its path relative to the shoot directory.
func imageID(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
