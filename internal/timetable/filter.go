package timetable

import (
	"sort"
	"time"

	"github.com/juriqh/masar-notes-buddy/internal/model"
)

// DaySymbol derives the weekday symbol for a moment in the given location,
// matching the textual day abbreviations used by the class table.
func DaySymbol(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Mon")
}

// FilterByDay returns the entries whose day symbol equals day,
// preserving input order. An empty result is a normal outcome,
// not an error: callers render "nothing scheduled".
func FilterByDay(classes []model.Class, day string) []model.Class {
	var out []model.Class
	for _, c := range classes {
		if c.DaysOfWeek == day {
			out = append(out, c)
		}
	}
	return out
}

// FilterWindow returns today's entries whose start time falls within
// [now, now+lookahead]. Entries whose start time fails parsing are returned
// in skipped for the caller to log; they are dropped from the result rather
// than surfaced as an error.
func FilterWindow(classes []model.Class, now time.Time, lookahead time.Duration, loc *time.Location) (matched, skipped []model.Class) {
	now = now.In(loc)
	day := now.Format("Mon")
	limit := now.Add(lookahead)

	for _, c := range classes {
		if c.DaysOfWeek != day {
			continue
		}
		clock, err := ParseClock(c.StartTime)
		if err != nil {
			skipped = append(skipped, c)
			continue
		}
		start := time.Date(now.Year(), now.Month(), now.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
		if !start.Before(now) && !start.After(limit) {
			matched = append(matched, c)
		}
	}
	return matched, skipped
}

// SortByStart sorts entries ascending by start time. The sort is stable:
// ties keep their original relative order, which the adjacency merge
// depends on.
func SortByStart(classes []model.Class) {
	sort.SliceStable(classes, func(i, j int) bool {
		return classes[i].StartTime < classes[j].StartTime
	})
}
