package bwmon

import "fmt"

var prefixes = [...]string{"", "k", "M", "G", "T", "P", "E", "Z", "Y"}

// FormatSize renders a byte count in a human-readable form, e.g. "  1.50 MB".
func FormatSize(value float64) string {
	return formatUnits(value, "B")
}

// FormatSpeed renders a transfer rate, e.g. "  1.50 MB/sec".
func FormatSpeed(value float64) string {
	return formatUnits(value, "B/sec")
}

func formatUnits(value float64, unit string) string {
	var power int
	for value >= 1000 && power < len(prefixes)-1 {
		value /= 1000
		power++
	}

	return fmt.Sprintf("%6.2f %s%s", value, prefixes[power], unit)
}
