package grouping

import (
	"strconv"

	"hdrgroup/internal/metadata"
)

func formatPair(current, previous float64) string {
	return strconv.FormatFloat(current, 'f', -1, 64) + " vs " + strconv.FormatFloat(previous, 'f', -1, 64)
}

func formatDims(current, previous metadata.Record) string {
	return strconv.Itoa(current.Width) + "x" + strconv.Itoa(current.Height) +
		" vs " + strconv.Itoa(previous.Width) + "x" + strconv.Itoa(previous.Height)
}
