package timetable

import (
	"errors"
	"testing"
)

func TestDayName_TotalForOneToSeven(t *testing.T) {
	want := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for n := 1; n <= 7; n++ {
		got, err := DayName(n)
		if err != nil {
			t.Fatalf("DayName(%d) returned error: %v", n, err)
		}
		if got != want[n-1] {
			t.Errorf("DayName(%d) = %q, want %q", n, got, want[n-1])
		}
	}
}

func TestDayName_OutOfRangeFailsLoudly(t *testing.T) {
	for _, n := range []int{0, 8, -1, 100} {
		_, err := DayName(n)
		if !errors.Is(err, ErrInvalidDayNumber) {
			t.Errorf("DayName(%d) = %v, want ErrInvalidDayNumber", n, err)
		}
	}
}

func TestNormalizeClock(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"08:00", "08:00:00"},
		{"8:00", "08:00:00"},
		{"13:00", "13:00:00"},
		{"09:50:00", "09:50:00"},
	}
	for _, tc := range cases {
		got, err := NormalizeClock(tc.in)
		if err != nil {
			t.Errorf("NormalizeClock(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeClock(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := NormalizeClock("noon"); err == nil {
		t.Error("NormalizeClock(\"noon\") should fail")
	}
}

func TestClockAM(t *testing.T) {
	if got := ClockAM("13:00:00"); got != "1:00 PM" {
		t.Errorf("ClockAM(13:00:00) = %q, want 1:00 PM", got)
	}
	if got := ClockAM("08:00:00"); got != "8:00 AM" {
		t.Errorf("ClockAM(08:00:00) = %q, want 8:00 AM", got)
	}
	// Unparsable values fall through unchanged.
	if got := ClockAM("TBA"); got != "TBA" {
		t.Errorf("ClockAM(TBA) = %q, want TBA", got)
	}
}
