// Package config loads, normalizes, and validates hdrgroup configuration data.
//
// It supplies repository defaults (including the 15 s / 20 px / 2.5 EV bracket
// thresholds), expands user paths, reads TOML files and honours the
// HDRGROUP_EXIFTOOL environment override. Command-line flags layer on top of
// the returned Config; nothing here is process-wide state.
package config
