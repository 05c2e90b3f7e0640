package dateutil

import "fmt"

// FormatDuration renders seconds as "1h 30m", or "30m" under an hour.
// Seconds are truncated, never rounded up; zero renders "0m".
// Caller guarantees non-negative input.
func FormatDuration(totalSeconds int64) string {
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatClock renders seconds as zero-padded "HH:MM:SS". Hours are not
// wrapped, so 25 hours renders "25:00:00".
func FormatClock(totalSeconds int64) string {
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
