package exiftool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"hdrgroup/internal/extract"
	"hdrgroup/internal/metadata"
)

// ErrToolFailed reports an exiftool invocation that produced no usable output.
var ErrToolFailed = errors.New("exiftool failed")

// Fields lists the tags requested from exiftool.
var Fields = []string{
	metadata.TagDateTimeOriginal,
	metadata.TagFocalLength,
	metadata.TagFNumber,
	metadata.TagExposureCompensation,
	metadata.TagExposureBiasValue,
	metadata.TagImageWidth,
	metadata.TagImageHeight,
}

const defaultBatchSize = 64

// Entry is one file's worth of exiftool output.
type Entry struct {
	SourceFile string
	Tags       metadata.Tags
	Error      string
}

// Inspect runs exiftool once over paths and decodes its JSON response. A
// non-zero exit status is tolerated when stdout still carries a JSON document,
// since exiftool exits 1 whenever any single file is unreadable.
func Inspect(ctx context.Context, binary string, paths []string) ([]Entry, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "exiftool"
	}
	if len(paths) == 0 {
		return nil, errors.New("exiftool inspect: no paths")
	}

	args := []string{"-j", "-n", "-q"}
	for _, field := range Fields {
		args = append(args, "-"+field)
	}
	args = append(args, "--")
	args = append(args, paths...)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = 2 * time.Second
	runErr := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	raw := bytes.TrimSpace(stdout.Bytes())
	if len(raw) == 0 {
		if runErr != nil {
			return nil, fmt.Errorf("%w: %w: %s", ErrToolFailed, runErr, strings.TrimSpace(stderr.String()))
		}
		return nil, nil
	}
	entries, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: parse output: %w", ErrToolFailed, err)
	}
	return entries, nil
}

func parse(raw []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var objects []map[string]any
	if err := dec.Decode(&objects); err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(objects))
	for _, obj := range objects {
		entry := Entry{}
		for key, value := range obj {
			switch key {
			case "SourceFile":
				entry.SourceFile = fmt.Sprint(value)
			case "Error":
				entry.Error = fmt.Sprint(value)
			case "ExifToolVersion", "Warning":
			default:
				entry.Tags.Set(key, metadata.FromAny(value))
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Extractor reads tags through exiftool in fixed-size batches.
type Extractor struct {
	Binary    string
	BatchSize int
	// Timeout bounds each batch invocation. Zero means no limit.
	Timeout time.Duration
}

// New returns an exiftool extractor.
func New(binary string, batchSize int, timeout time.Duration) *Extractor {
	return &Extractor{Binary: binary, BatchSize: batchSize, Timeout: timeout}
}

func (*Extractor) Name() string { return "exiftool" }

func (e *Extractor) Extract(ctx context.Context, paths []string) ([]extract.Item, error) {
	size := e.BatchSize
	if size <= 0 {
		size = defaultBatchSize
	}
	items := make([]extract.Item, 0, len(paths))
	for start := 0; start < len(paths); start += size {
		batch := paths[start:min(start+size, len(paths))]
		entries, err := e.inspect(ctx, batch)
		if err != nil {
			return nil, err
		}
		bySource := make(map[string]Entry, len(entries))
		for _, entry := range entries {
			bySource[entry.SourceFile] = entry
		}
		for _, path := range batch {
			items = append(items, itemFor(path, bySource))
		}
	}
	return items, nil
}

func (e *Extractor) inspect(ctx context.Context, batch []string) ([]Entry, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	return Inspect(ctx, e.Binary, batch)
}

func itemFor(path string, bySource map[string]Entry) extract.Item {
	entry, ok := bySource[path]
	switch {
	case !ok:
		return extract.Item{Path: path, Err: fmt.Errorf("%w: not reported by exiftool", extract.ErrNoMetadata)}
	case entry.Error != "":
		return extract.Item{Path: path, Err: fmt.Errorf("%w: %s", extract.ErrNoMetadata, entry.Error)}
	case entry.Tags.Len() == 0:
		return extract.Item{Path: path, Err: extract.ErrNoMetadata}
	default:
		return extract.Item{Path: path, Tags: entry.Tags}
	}
}
