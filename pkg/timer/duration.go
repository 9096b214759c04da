package timer

import (
	"fmt"
	"time"
)

// Elapsed returns the time between two instants, clamped at zero so a clock
// skew can never produce a negative duration.
func Elapsed(start, end time.Time) time.Duration {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return d
}

// FormatDuration renders a duration compactly using the largest non-zero
// units: "1h 1m 1s", "1m 5s" or "42s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSeconds := int64(d / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// FormatMilliseconds is FormatDuration for the millisecond counts stored on
// completed entries.
func FormatMilliseconds(ms int64) string {
	return FormatDuration(time.Duration(ms) * time.Millisecond)
}

// FormatClock renders a duration as HH:MM:SS for tabular reports.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSeconds := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", totalSeconds/3600, (totalSeconds%3600)/60, totalSeconds%60)
}
