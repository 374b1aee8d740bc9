// Package exiftool wraps the exiftool binary as a metadata extractor.
//
// exiftool is invoked in JSON mode with numeric output (-j -n) so exposure and
// optics tags arrive as numbers rather than formatted strings such as "f/8.0".
package exiftool
