// Package grouping partitions normalized image records into exposure brackets.
//
// Cluster sorts records by capture time and makes a single forward pass,
// comparing each record with the record most recently admitted to the open
// group. A record extends the group when it is close enough in time, shares
// optics and dimensions within tolerance, and does not combine a large
// exposure jump with a non-trivial time gap. Because every comparison is
// against the immediate predecessor, tolerance windows drift across long
// groups; this is intentional and changes outcomes if "fixed".
//
// Every comparison is returned as a Decision and logged as a structured
// decision event; the package never prints.
package grouping
