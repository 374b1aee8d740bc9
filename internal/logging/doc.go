// Package logging assembles structured slog loggers and formatting helpers used
// across hdrgroup.
//
// It owns the console/JSON handlers, centralizes level and output plumbing, and
// defines the standard field keys used for grouping diagnostics (rejected
// images, per-pair bracket decisions). The package also provides a no-op
// logger for tests and library callers that do not want output.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
