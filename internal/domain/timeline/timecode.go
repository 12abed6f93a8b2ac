package timeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseClock parses a catalog duration in "MM:SS" form. Minutes may exceed
// 59. It reports false for anything that does not yield a positive, finite
// number of seconds.
func ParseClock(s string) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, false
	}

	minutes, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, false
	}

	total := minutes*60 + seconds
	if minutes < 0 || seconds < 0 || math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		return 0, false
	}
	return total, true
}

// ClipSeconds returns the clip length encoded in a catalog duration string,
// falling back to DefaultClipSeconds when it is missing or unusable.
func ClipSeconds(duration string) float64 {
	if seconds, ok := ParseClock(duration); ok {
		return seconds
	}
	return DefaultClipSeconds
}

// FormatClock renders seconds as zero-padded "MM:SS", truncating fractions.
func FormatClock(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int64(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatTrimInput renders seconds as "M:SS.S", the format of the trim fields.
// Values are rounded to the nearest tenth before splitting so that 59.96
// becomes "1:00.0" rather than "0:60.0".
func FormatTrimInput(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	tenths := int64(math.Round(seconds * 10))
	minutes := tenths / 600
	rest := float64(tenths-minutes*600) / 10
	return fmt.Sprintf("%d:%04.1f", minutes, rest)
}

// ParseTrimInput parses "M:SS.S" into seconds. Whole minutes are required;
// seconds may carry a fraction.
func ParseTrimInput(s string) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, false
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, false
	}
	return float64(minutes)*60 + seconds, true
}
