package vision

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSONArray reports that the model reply carried no parsable JSON array.
// Callers treat this as "extraction failed" and abort the pipeline for that
// image; it is never a panic.
var ErrNoJSONArray = errors.New("no JSON array found in model response")

// ExtractedClassRecord is one class as reported by the vision model.
// It exists only between the model response and the persistence insert.
// Individual fields may be missing: extraction accepts any syntactically
// valid JSON array and validation happens at persistence time.
type ExtractedClassRecord struct {
	CourseCode        string `json:"course_code"`
	CourseNameArabic  string `json:"course_name_arabic"`
	CourseNameEnglish string `json:"course_name_english"`
	DayNumber         int    `json:"day_number"` // 1=Sunday .. 7=Saturday
	StartTime         string `json:"start_time"` // "HH:MM"
	EndTime           string `json:"end_time"`   // "HH:MM"
	Building          string `json:"building"`
	Floor             string `json:"floor"`
	Wing              string `json:"wing"`
	Room              string `json:"room"`
	InstructorName    string `json:"instructor_name"`
}

// ExtractJSONArray pulls the JSON array out of free-form model text by taking
// the span from the first '[' to the last ']' and parsing it. The model is
// told to answer with bare JSON but routinely wraps it in prose, so the
// greedy bracket span is the contract here.
func ExtractJSONArray(text string) ([]ExtractedClassRecord, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSONArray
	}

	var records []ExtractedClassRecord
	if err := json.Unmarshal([]byte(text[start:end+1]), &records); err != nil {
		return nil, errors.Join(ErrNoJSONArray, err)
	}
	return records, nil
}
