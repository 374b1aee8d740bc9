package extract

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"io"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"hdrgroup/internal/metadata"
)

// Decoder extracts EXIF tags natively. Pixel dimensions are taken from the
// decoded image header when available, overriding the EXIF dimension tags.
type Decoder struct{}

// NewDecoder returns the native EXIF extractor.
func NewDecoder() *Decoder { return &Decoder{} }

func (*Decoder) Name() string { return "native" }

func (d *Decoder) Extract(ctx context.Context, paths []string) ([]Item, error) {
	items := make([]Item, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tags, err := d.ReadFile(path)
		items = append(items, Item{Path: path, Tags: tags, Err: err})
	}
	return items, nil
}

// ReadFile decodes the tags of a single file.
func (d *Decoder) ReadFile(path string) (metadata.Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return metadata.Tags{}, fmt.Errorf("%w: %w", ErrNoMetadata, err)
	}
	defer f.Close()
	return d.Read(f)
}

// Read decodes tags from r, seeking back to the start to read the image size.
func (d *Decoder) Read(r io.ReadSeeker) (metadata.Tags, error) {
	x, err := exif.Decode(r)
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		if err == nil {
			err = errors.New("empty exif")
		}
		return metadata.Tags{}, fmt.Errorf("%w: %w", ErrNoMetadata, err)
	}

	collector := tagCollector{}
	_ = x.Walk(&collector)
	tags := collector.tags
	if tags.Len() == 0 {
		return metadata.Tags{}, fmt.Errorf("%w: exif has no tags", ErrNoMetadata)
	}

	if _, err := r.Seek(0, io.SeekStart); err == nil {
		if cfg, _, err := image.DecodeConfig(r); err == nil {
			tags.Set(metadata.TagImageWidth, metadata.NumberValue(float64(cfg.Width)))
			tags.Set(metadata.TagImageHeight, metadata.NumberValue(float64(cfg.Height)))
			return tags, nil
		}
	}
	fillDimension(&tags, metadata.TagImageWidth, string(exif.PixelXDimension))
	fillDimension(&tags, metadata.TagImageHeight, string(exif.PixelYDimension))
	return tags, nil
}

func fillDimension(tags *metadata.Tags, key, fallback string) {
	if tags.Lookup(key).Present() {
		return
	}
	if v := tags.Lookup(fallback); v.Present() {
		tags.Set(key, v)
	}
}

type tagCollector struct {
	tags metadata.Tags
}

func (c *tagCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if tag == nil {
		return nil
	}
	if value, ok := convertTag(tag); ok {
		c.tags.Set(string(name), value)
	}
	return nil
}

// convertTag maps the first element of a TIFF tag onto a typed value.
func convertTag(tag *tiff.Tag) (metadata.Value, bool) {
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return metadata.Value{}, false
		}
		return metadata.TextValue(strings.TrimRight(s, "\x00")), true
	case tiff.RatVal:
		if tag.Count == 0 {
			return metadata.Value{}, false
		}
		num, den, err := tag.Rat2(0)
		if err != nil || den == 0 {
			return metadata.Value{}, false
		}
		return metadata.NumberValue(float64(num) / float64(den)), true
	case tiff.IntVal:
		if tag.Count == 0 {
			return metadata.Value{}, false
		}
		v, err := tag.Int(0)
		if err != nil {
			return metadata.Value{}, false
		}
		return metadata.NumberValue(float64(v)), true
	case tiff.FloatVal:
		if tag.Count == 0 {
			return metadata.Value{}, false
		}
		v, err := tag.Float(0)
		if err != nil {
			return metadata.Value{}, false
		}
		return metadata.NumberValue(v), true
	default:
		return metadata.Value{}, false
	}
}
