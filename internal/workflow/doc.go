// Package workflow runs the end-to-end grouping of a shoot directory.
//
// A Runner scans the directory, extracts capture tags (through the metadata
// cache and worker pool when configured), normalizes every file into a
// record, and clusters the surviving records into brackets. Images that
// cannot be normalized are reported on the Report and logged with their
// reason; they never abort the run. Only failures affecting the directory as a
// whole, such as a missing directory or a broken extraction backend, are
// returned as errors.
//
// Every run carries its own run_id on all log records so the diagnostics of
// batch runs over many shoots can be separated.
package workflow
