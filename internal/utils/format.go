package utils

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count with binary units and two decimals.
// Unknown sizes render as "Unknown".
func FormatSize(size int64, known bool) string {
	if !known {
		return "Unknown"
	}
	if size == 0 {
		return "0 B"
	}

	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d %s", int64(value), sizeUnits[unit])
	}
	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}

// FormatBytes renders a size that is always known
func FormatBytes(size int64) string {
	return FormatSize(size, true)
}
