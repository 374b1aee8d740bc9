// Package scanner enumerates the image files of a shoot directory.
//
// File lists are returned in lexicographic order so that frames sharing a
// capture second keep their filename order through the stable timestamp sort
// performed by grouping.
package scanner
