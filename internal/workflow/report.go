package workflow

import (
	"errors"
	"time"

	"hdrgroup/internal/grouping"
	"hdrgroup/internal/metadata"
)

// RejectionKind classifies why an image was left out of grouping.
type RejectionKind string

const (
	RejectMetadataAbsent      RejectionKind = "metadata_absent"
	RejectMetadataUnparseable RejectionKind = "metadata_unparseable"
)

// Rejection records one image excluded from grouping.
type Rejection struct {
	ID    string        `json:"id"`
	Kind  RejectionKind `json:"kind"`
	Field string        `json:"field,omitempty"`
	Error string        `json:"error"`
}

func newRejection(id string, err error) Rejection {
	rej := Rejection{ID: id, Kind: RejectMetadataAbsent, Error: err.Error()}
	if errors.Is(err, metadata.ErrMetadataUnparseable) {
		rej.Kind = RejectMetadataUnparseable
	}
	var fieldErr *metadata.FieldError
	if errors.As(err, &fieldErr) {
		rej.Field = fieldErr.Field
	}
	return rej
}

// Report summarizes one grouping run.
type Report struct {
	RunID     string          `json:"run_id"`
	Dir       string          `json:"dir"`
	Extractor string          `json:"extractor"`
	Scanned   int             `json:"scanned"`
	Rejected  []Rejection     `json:"rejected"`
	Result    grouping.Result `json:"-"`
	Duration  time.Duration   `json:"duration"`
}

// Grouped returns the number of images placed into groups.
func (r Report) Grouped() int {
	n := 0
	for _, g := range r.Result.Groups {
		n += len(g.Members)
	}
	return n
}

// Skipped counts rejections per kind.
func (r Report) Skipped() map[RejectionKind]int {
	counts := make(map[RejectionKind]int, 2)
	for _, rej := range r.Rejected {
		counts[rej.Kind]++
	}
	return counts
}
