package timetable

import (
	"fmt"
	"time"
)

const clockLayout = "15:04:05"

// ParseClock parses a canonical "HH:MM:SS" wall-clock string.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return t, nil
}

// NormalizeClock canonicalises "H:MM" / "HH:MM" / "HH:MM:SS" to zero-padded
// "HH:MM:SS". Extraction output arrives as "HH:MM"; everything stored or
// compared downstream uses the canonical form so that the merge's exact
// string-equality adjacency test cannot be broken by formatting drift.
func NormalizeClock(s string) (string, error) {
	for _, layout := range []string{"15:04:05", "15:04", "3:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(clockLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognised clock value %q", s)
}

// ClockAM formats a canonical clock string as "3:04 PM" for chat messages.
// Unparsable values fall through unchanged.
func ClockAM(s string) string {
	t, err := ParseClock(s)
	if err != nil {
		return s
	}
	return t.Format("3:04 PM")
}
