package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestExportXLSX_NoClasses(t *testing.T) {
	svc := NewExportService(testRepo(nil, nil), testOwner, time.UTC, zap.NewNop())

	_, _, err := svc.ExportXLSX(context.Background())
	if !errors.Is(err, ErrExportNoClasses) {
		t.Fatalf("expected ErrExportNoClasses, got %v", err)
	}
}

func TestExportXLSX_ProducesWorkbook(t *testing.T) {
	repo := testRepo(newMockClassRepo(
		ownerClass("1203", "Learning Skills", "Mon", "13:00:00", "14:50:00"),
		ownerClass("1001", "English", "Sun", "08:00:00", "09:50:00"),
	), nil)
	svc := NewExportService(repo, testOwner, time.UTC, zap.NewNop())

	buf, filename, err := svc.ExportXLSX(context.Background())
	if err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}
	if filename != "masar-schedule.xlsx" {
		t.Errorf("filename = %q", filename)
	}
	// xlsx files are zip archives.
	if head := buf.Bytes()[:2]; head[0] != 'P' || head[1] != 'K' {
		t.Errorf("payload is not a zip archive: % x", head)
	}
}

func TestExportICS_WeeklyRecurringEvents(t *testing.T) {
	repo := testRepo(newMockClassRepo(
		ownerClass("1001", "English", "Sun", "08:00:00", "09:50:00"),
	), nil)
	svc := NewExportService(repo, testOwner, time.UTC, zap.NewNop())

	buf, filename, err := svc.ExportICS(context.Background())
	if err != nil {
		t.Fatalf("ExportICS: %v", err)
	}
	if filename != "masar-schedule.ics" {
		t.Errorf("filename = %q", filename)
	}

	out := buf.String()
	for _, want := range []string{"BEGIN:VCALENDAR", "BEGIN:VEVENT", "RRULE:FREQ=WEEKLY", "English (1001)"} {
		if !strings.Contains(out, want) {
			t.Errorf("calendar missing %q:\n%s", want, out)
		}
	}
}

func TestExportICS_SkipsUnparsableRows(t *testing.T) {
	repo := testRepo(newMockClassRepo(
		ownerClass("1001", "English", "Sun", "08:00:00", "09:50:00"),
		ownerClass("9999", "Broken", "Sun", "sometime", "11:00:00"),
	), nil)
	svc := NewExportService(repo, testOwner, time.UTC, zap.NewNop())

	buf, _, err := svc.ExportICS(context.Background())
	if err != nil {
		t.Fatalf("ExportICS: %v", err)
	}
	if strings.Contains(buf.String(), "9999") {
		t.Errorf("unparsable row not skipped")
	}
}
