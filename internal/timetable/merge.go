package timetable

import "github.com/juriqh/masar-notes-buddy/internal/model"

// MergeAdjacent collapses back-to-back sessions of the same course into one
// display block. Input must be one day's entries sorted ascending by start
// time. A merge happens only when the next entry shares the class code AND
// its start time exactly equals the current block's end time, compared as
// canonical "HH:MM:SS" strings; any gap, even one second, breaks the chain.
//
// The result is a new slice of at most len(classes) blocks; the input is
// not modified. Applying MergeAdjacent to its own output is a no-op.
func MergeAdjacent(classes []model.Class) []model.Class {
	if len(classes) == 0 {
		return nil
	}

	merged := make([]model.Class, 0, len(classes))
	block := classes[0]

	for _, next := range classes[1:] {
		if next.ClassCode == block.ClassCode && next.StartTime == block.EndTime {
			block.EndTime = next.EndTime
			continue
		}
		merged = append(merged, block)
		block = next
	}
	merged = append(merged, block)

	return merged
}
