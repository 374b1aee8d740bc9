package metadata

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the EXIF capture time layout.
const TimestampLayout = "2006:01:02 15:04:05"

// Record is the comparable per-image metadata admitted to clustering.
type Record struct {
	ID                   string    `json:"id"`
	Taken                time.Time `json:"taken"`
	FocalLength          float64   `json:"focal_length"`
	Aperture             float64   `json:"aperture"`
	ExposureCompensation float64   `json:"exposure_compensation"`
	Width                int       `json:"width"`
	Height               int       `json:"height"`
	// Defaulted lists lenient fields that fell back to zero.
	Defaulted []string `json:"defaulted,omitempty"`
}

// Normalize builds a Record from raw metadata. Images without a usable
// timestamp, focal length or aperture are rejected with an error wrapping
// ErrMetadataUnparseable; images with no metadata at all are rejected with
// ErrMetadataAbsent. Exposure compensation and dimensions never reject.
func Normalize(id string, md Metadata) (Record, error) {
	if md == nil || md.Len() == 0 {
		return Record{}, ErrMetadataAbsent
	}

	rec := Record{ID: id}

	text, ok := md.Lookup(TagDateTimeOriginal).Text()
	if !ok {
		return Record{}, fieldError(TagDateTimeOriginal, errValueAbsent)
	}
	taken, err := ParseTimestamp(text)
	if err != nil {
		return Record{}, fieldError(TagDateTimeOriginal, err)
	}
	rec.Taken = taken

	if rec.FocalLength, err = strictNumber(md, TagFocalLength); err != nil {
		return Record{}, err
	}
	if rec.Aperture, err = strictNumber(md, TagFNumber); err != nil {
		return Record{}, err
	}

	exposure, found := FirstNumber(md, ExposureCandidates...)
	if !found {
		rec.Defaulted = append(rec.Defaulted, TagExposureCompensation)
	}
	rec.ExposureCompensation = exposure

	if rec.Width, err = md.Lookup(TagImageWidth).Int(); err != nil {
		rec.Width = 0
		rec.Defaulted = append(rec.Defaulted, TagImageWidth)
	}
	if rec.Height, err = md.Lookup(TagImageHeight).Int(); err != nil {
		rec.Height = 0
		rec.Defaulted = append(rec.Defaulted, TagImageHeight)
	}
	return rec, nil
}

// ParseTimestamp parses an EXIF capture time at one-second precision.
// Anything after the first '-' (a zone suffix) is discarded before parsing;
// fractional seconds are rejected.
func ParseTimestamp(text string) (time.Time, error) {
	if idx := strings.IndexByte(text, '-'); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	// time.Parse accepts a trailing ".xxx" or ",xxx" the layout does not name.
	if len(text) != len(TimestampLayout) {
		return time.Time{}, fmt.Errorf("timestamp %q is not in %q form", text, TimestampLayout)
	}
	return time.Parse(TimestampLayout, text)
}

// FirstNumber returns the first candidate tag that is present and parses as a
// number. It reports false and zero when none do.
func FirstNumber(md Metadata, keys ...string) (float64, bool) {
	for _, key := range keys {
		value := md.Lookup(key)
		if !value.Present() {
			continue
		}
		num, empty, err := value.Number()
		if err != nil || empty {
			continue
		}
		return num, true
	}
	return 0, false
}

// strictNumber reads an optics field: empty text is zero, anything missing or
// unparseable rejects the image.
func strictNumber(md Metadata, key string) (float64, error) {
	num, _, err := md.Lookup(key).Number()
	if err != nil {
		return 0, fieldError(key, err)
	}
	return num, nil
}
