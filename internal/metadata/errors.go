package metadata

import (
	"errors"
	"fmt"
)

var (
	// ErrMetadataAbsent reports an image with no capture metadata at all.
	ErrMetadataAbsent = errors.New("metadata absent")
	// ErrMetadataUnparseable reports a required field that is missing or malformed.
	ErrMetadataUnparseable = errors.New("metadata unparseable")

	errValueAbsent = errors.New("value absent")
)

// FieldError describes the field that caused an image to be rejected.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrMetadataUnparseable, e.Field, e.Err)
}

func (e *FieldError) Unwrap() []error {
	return []error{ErrMetadataUnparseable, e.Err}
}

func fieldError(field string, err error) error {
	if errors.Is(err, errValueAbsent) {
		err = errors.New("missing")
	}
	return &FieldError{Field: field, Err: err}
}
