package metadata

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func completeTags() Tags {
	return NewTags(map[string]Value{
		TagDateTimeOriginal:     TextValue("2024:06:01 10:00:03"),
		TagFocalLength:          NumberValue(24),
		TagFNumber:              NumberValue(8),
		TagExposureCompensation: NumberValue(-1.7),
		TagImageWidth:           NumberValue(6000),
		TagImageHeight:          NumberValue(4000),
	})
}

func TestNormalizeComplete(t *testing.T) {
	rec, err := Normalize("a.jpg", completeTags())
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	want := time.Date(2024, 6, 1, 10, 0, 3, 0, time.UTC)
	if !rec.Taken.Equal(want) {
		t.Fatalf("unexpected timestamp: got %v want %v", rec.Taken, want)
	}
	if rec.ID != "a.jpg" || rec.FocalLength != 24 || rec.Aperture != 8 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.ExposureCompensation != -1.7 {
		t.Fatalf("unexpected exposure: %v", rec.ExposureCompensation)
	}
	if rec.Width != 6000 || rec.Height != 4000 {
		t.Fatalf("unexpected dimensions: %dx%d", rec.Width, rec.Height)
	}
	if len(rec.Defaulted) != 0 {
		t.Fatalf("expected no defaulted fields, got %v", rec.Defaulted)
	}
}

func TestNormalizeRejections(t *testing.T) {
	tests := []struct {
		name  string
		tags  Metadata
		want  error
		field string
	}{
		{name: "nil metadata", tags: nil, want: ErrMetadataAbsent},
		{name: "empty metadata", tags: Tags{}, want: ErrMetadataAbsent},
		{name: "missing timestamp", tags: without(TagDateTimeOriginal), want: ErrMetadataUnparseable, field: TagDateTimeOriginal},
		{name: "malformed timestamp", tags: with(TagDateTimeOriginal, TextValue("yesterday")), want: ErrMetadataUnparseable, field: TagDateTimeOriginal},
		{name: "fractional seconds", tags: with(TagDateTimeOriginal, TextValue("2024:06:01 10:00:15.50")), want: ErrMetadataUnparseable, field: TagDateTimeOriginal},
		{name: "missing focal", tags: without(TagFocalLength), want: ErrMetadataUnparseable, field: TagFocalLength},
		{name: "bad focal", tags: with(TagFocalLength, TextValue("wide")), want: ErrMetadataUnparseable, field: TagFocalLength},
		{name: "missing aperture", tags: without(TagFNumber), want: ErrMetadataUnparseable, field: TagFNumber},
		{name: "bad aperture", tags: with(TagFNumber, TextValue("f/8")), want: ErrMetadataUnparseable, field: TagFNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize("x.jpg", tt.tags)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if tt.field == "" {
				return
			}
			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("expected FieldError, got %T", err)
			}
			if fieldErr.Field != tt.field {
				t.Fatalf("unexpected field: got %q want %q", fieldErr.Field, tt.field)
			}
		})
	}
}

func TestNormalizeEmptyOpticsDefaultToZero(t *testing.T) {
	tags := completeTags()
	tags.Set(TagFocalLength, TextValue(""))
	tags.Set(TagFNumber, TextValue("  "))
	rec, err := Normalize("a.jpg", tags)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if rec.FocalLength != 0 || rec.Aperture != 0 {
		t.Fatalf("expected zero optics, got focal=%v aperture=%v", rec.FocalLength, rec.Aperture)
	}
}

func TestNormalizeTextNumbers(t *testing.T) {
	tags := completeTags()
	tags.Set(TagFocalLength, TextValue("35.0"))
	tags.Set(TagFNumber, TextValue(" 2.8 "))
	tags.Set(TagImageWidth, TextValue("1920"))
	rec, err := Normalize("a.jpg", tags)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if rec.FocalLength != 35 || rec.Aperture != 2.8 || rec.Width != 1920 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestNormalizeExposureFallback(t *testing.T) {
	tests := []struct {
		name      string
		primary   Value
		secondary Value
		want      float64
		defaulted bool
	}{
		{name: "primary wins", primary: NumberValue(1), secondary: NumberValue(2), want: 1},
		{name: "explicit zero primary wins", primary: NumberValue(0), secondary: NumberValue(2), want: 0},
		{name: "secondary when primary absent", primary: Absent(), secondary: NumberValue(-2), want: -2},
		{name: "secondary when primary malformed", primary: TextValue("n/a"), secondary: TextValue("0.7"), want: 0.7},
		{name: "both absent", primary: Absent(), secondary: Absent(), want: 0, defaulted: true},
		{name: "both malformed", primary: TextValue("?"), secondary: TextValue("?"), want: 0, defaulted: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := completeTags()
			tags.Set(TagExposureCompensation, tt.primary)
			tags.Set(TagExposureBiasValue, tt.secondary)
			rec, err := Normalize("a.jpg", tags)
			if err != nil {
				t.Fatalf("exposure must never reject: %v", err)
			}
			if rec.ExposureCompensation != tt.want {
				t.Fatalf("unexpected exposure: got %v want %v", rec.ExposureCompensation, tt.want)
			}
			if got := slices.Contains(rec.Defaulted, TagExposureCompensation); got != tt.defaulted {
				t.Fatalf("defaulted=%v, want %v", got, tt.defaulted)
			}
		})
	}
}

func TestNormalizeDimensionsDefault(t *testing.T) {
	tags := completeTags()
	tags.Set(TagImageWidth, Absent())
	tags.Set(TagImageHeight, TextValue("tall"))
	rec, err := Normalize("a.jpg", tags)
	if err != nil {
		t.Fatalf("dimensions must never reject: %v", err)
	}
	if rec.Width != 0 || rec.Height != 0 {
		t.Fatalf("expected zero dimensions, got %dx%d", rec.Width, rec.Height)
	}
	if !slices.Equal(rec.Defaulted, []string{TagImageWidth, TagImageHeight}) {
		t.Fatalf("unexpected defaulted fields: %v", rec.Defaulted)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2023:01:02 03:04:05", want: time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)},
		{in: " 2023:01:02 03:04:05 ", want: time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)},
		{in: "2023:01:02 03:04:05-07:00", want: time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)},
		{in: "2023-01-02 03:04:05", wantErr: true},
		{in: "", wantErr: true},
		{in: "2023:13:02 03:04:05", wantErr: true},
		{in: "2023:01:02 03:04:05.5", wantErr: true},
		{in: "2023:01:02 03:04:05,75", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimestamp returned error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func without(key string) Tags {
	tags := completeTags()
	tags.Set(key, Absent())
	return tags
}

func with(key string, value Value) Tags {
	tags := completeTags()
	tags.Set(key, value)
	return tags
}
