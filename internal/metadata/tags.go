package metadata

import (
	"encoding/json"
	"sort"

	"golang.org/x/text/cases"
)

// Tag names recognised by Normalize.
const (
	TagDateTimeOriginal     = "DateTimeOriginal"
	TagFocalLength          = "FocalLength"
	TagFNumber              = "FNumber"
	TagExposureCompensation = "ExposureCompensation"
	TagExposureBiasValue    = "ExposureBiasValue"
	TagImageWidth           = "ImageWidth"
	TagImageHeight          = "ImageHeight"
)

// ExposureCandidates lists the exposure compensation tags in lookup order.
var ExposureCandidates = []string{TagExposureCompensation, TagExposureBiasValue}

// Metadata is a read-only lookup over an image's capture tags.
type Metadata interface {
	Lookup(key string) Value
	Len() int
}

type tagEntry struct {
	key   string
	value Value
}

// Tags is the in-memory Metadata implementation. Keys are matched
// case-insensitively; the spelling of the first Set wins for Keys.
type Tags struct {
	entries map[string]tagEntry
}

// NewTags builds a Tags set from plain values.
func NewTags(values map[string]Value) Tags {
	t := Tags{}
	for key, value := range values {
		t.Set(key, value)
	}
	return t
}

func foldKey(key string) string {
	return cases.Fold().String(key)
}

// Set stores value under key. Absent values remove the key.
func (t *Tags) Set(key string, value Value) {
	folded := foldKey(key)
	if !value.Present() {
		delete(t.entries, folded)
		return
	}
	if t.entries == nil {
		t.entries = make(map[string]tagEntry)
	}
	if existing, ok := t.entries[folded]; ok {
		key = existing.key
	}
	t.entries[folded] = tagEntry{key: key, value: value}
}

func (t Tags) Lookup(key string) Value {
	if t.entries == nil {
		return Absent()
	}
	entry, ok := t.entries[foldKey(key)]
	if !ok {
		return Absent()
	}
	return entry.value
}

func (t Tags) Len() int { return len(t.entries) }

// Keys returns the stored tag names in sorted order.
func (t Tags) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for _, entry := range t.entries {
		keys = append(keys, entry.key)
	}
	sort.Strings(keys)
	return keys
}

func (t Tags) MarshalJSON() ([]byte, error) {
	out := make(map[string]Value, len(t.entries))
	for _, entry := range t.entries {
		out[entry.key] = entry.value
	}
	return json.Marshal(out)
}

func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw map[string]Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = NewTags(raw)
	return nil
}
