package filesize

import (
	"math"
	"strconv"
)

var units = []string{"Bytes", "KB", "MB", "GB"}

// Format renders a byte count as a human-readable string using binary
// units, e.g. Format(1536) == "1.5 KB".
func Format(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}

	value := float64(bytes) / math.Pow(1024, float64(i))
	rounded := math.Round(value*100) / 100

	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + units[i]
}
