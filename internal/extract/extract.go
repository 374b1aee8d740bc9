package extract

import (
	"context"
	"errors"

	"hdrgroup/internal/metadata"
)

// ErrNoMetadata reports a file without readable capture metadata.
var ErrNoMetadata = errors.New("no capture metadata")

// Item is the extraction outcome for one file.
type Item struct {
	Path string
	Tags metadata.Tags
	Err  error
}

// Extractor reads capture tags for a batch of files.
type Extractor interface {
	// Name identifies the backend; cached results are keyed by it.
	Name() string
	// Extract returns exactly one Item per path, in input order.
	Extract(ctx context.Context, paths []string) ([]Item, error)
}
