// Package metadata turns raw per-image capture tags into comparable records.
//
// Tag values are read through the Metadata accessor, which only ever hands back
// typed optional values (number, text or absent), so a missing or malformed tag
// surfaces as a typed Normalize error instead of a runtime failure. Normalize
// applies strict rules to the fields that identify a bracket (capture time,
// focal length, aperture) and lenient defaults to the rest (exposure
// compensation, pixel dimensions).
//
// The package holds no shared state; normalising distinct images is safe from
// any number of goroutines.
package metadata
