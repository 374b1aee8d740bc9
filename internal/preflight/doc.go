// Package preflight provides readiness checks for the filesystem paths and
// helper binaries hdrgroup depends on.
//
// The CLI "hdrgroup doctor" command runs RunAll and CheckSystemDeps to display
// environment health. The group commands call CheckReadableDirectory on the
// shoot directory before scanning so permission problems surface with a clear
// message instead of a walk error.
//
// Each check is gated by its config toggle; disabled features are skipped.
package preflight
