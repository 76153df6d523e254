package vision

import (
	"errors"
	"testing"
)

func TestExtractJSONArray_SurroundingProse(t *testing.T) {
	text := `Here is the result: [{"course_code":"1001","day_number":1,"start_time":"08:00","end_time":"09:50"}] Thanks`

	records, err := ExtractJSONArray(text)
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].CourseCode != "1001" || records[0].DayNumber != 1 {
		t.Errorf("unexpected record: %+v", records[0])
	}
}

func TestExtractJSONArray_NoBracketPair(t *testing.T) {
	for _, text := range []string{
		"I could not find any classes in this image.",
		"",
		"closing only ]",
		"[ opening only",
		"] reversed [",
	} {
		records, err := ExtractJSONArray(text)
		if !errors.Is(err, ErrNoJSONArray) {
			t.Errorf("%q: expected ErrNoJSONArray, got %v", text, err)
		}
		if len(records) != 0 {
			t.Errorf("%q: expected empty result, got %+v", text, records)
		}
	}
}

func TestExtractJSONArray_MalformedJSONInsideBrackets(t *testing.T) {
	records, err := ExtractJSONArray(`result: [{"course_code": }] done`)
	if !errors.Is(err, ErrNoJSONArray) {
		t.Errorf("expected ErrNoJSONArray for malformed span, got %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty result, got %+v", records)
	}
}

func TestExtractJSONArray_MissingFieldsAccepted(t *testing.T) {
	// Extraction does no schema validation beyond parse success; validation
	// of individual fields happens at persistence time.
	records, err := ExtractJSONArray(`[{"course_code":"1103"}]`)
	if err != nil {
		t.Fatalf("extraction failed: %v", err)
	}
	if len(records) != 1 || records[0].DayNumber != 0 {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestExtractJSONArray_GreedySpanCoversNestedArrays(t *testing.T) {
	text := `note [1] then [{"course_code":"1001","day_number":2}] end`
	// The greedy first-[ to last-] span covers "[1] then [...]" which is not
	// valid JSON, so this reports failure rather than a partial parse.
	_, err := ExtractJSONArray(text)
	if !errors.Is(err, ErrNoJSONArray) {
		t.Errorf("expected ErrNoJSONArray for greedy span, got %v", err)
	}
}
