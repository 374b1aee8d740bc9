// Package extract reads raw capture tags from image files.
//
// An Extractor turns a batch of paths into one Item per path, in order. Per-file
// problems (unreadable file, no EXIF segment) are reported on the Item and never
// fail the batch; only cancellation or a broken backend returns an error.
//
// Decoder is the built-in backend based on github.com/rwcarlsen/goexif. The
// exiftool sub-package wraps the external exiftool binary for formats the
// native decoder cannot read. Concurrent spreads any backend across a bounded
// number of workers without changing result order.
package extract
