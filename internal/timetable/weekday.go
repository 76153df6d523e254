// Package timetable holds the pure schedule logic: weekday mapping,
// day/window filtering and adjacency merging. Functions here carry no
// ambient state so they can be exercised in isolation.
package timetable

import (
	"errors"
	"fmt"
)

// ErrInvalidDayNumber reports a numeric day outside 1..7. Vision output is
// untrusted, so callers must treat this as a hard rejection rather than
// wrapping or defaulting.
var ErrInvalidDayNumber = errors.New("day number outside 1-7")

// dayNames indexes the weekday symbols by the extraction convention
// 1=Sunday .. 7=Saturday.
var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DayName maps a numeric day (1=Sunday .. 7=Saturday) to its weekday symbol.
func DayName(n int) (string, error) {
	if n < 1 || n > 7 {
		return "", fmt.Errorf("%w: %d", ErrInvalidDayNumber, n)
	}
	return dayNames[n-1], nil
}

// IsWeekdaySymbol reports whether s is one of the seven weekday symbols.
func IsWeekdaySymbol(s string) bool {
	for _, d := range dayNames {
		if d == s {
			return true
		}
	}
	return false
}
