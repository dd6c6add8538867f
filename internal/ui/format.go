package ui

import (
	"fmt"
	"time"
)

// FormatLatency renders a latency for a table cell: sub-millisecond values
// keep two decimals, everything else one.
func FormatLatency(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	ms := float64(d) / float64(time.Millisecond)
	if ms < 1 {
		return fmt.Sprintf("%.2fms", ms)
	}
	return fmt.Sprintf("%.1fms", ms)
}

// FormatLoss renders a loss ratio as a percentage.
func FormatLoss(loss float64) string {
	return fmt.Sprintf("%.0f%%", loss*100)
}
