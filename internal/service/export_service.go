package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/juriqh/masar-notes-buddy/internal/model"
	"github.com/juriqh/masar-notes-buddy/internal/repository"
	"github.com/juriqh/masar-notes-buddy/internal/timetable"
)

// ErrExportNoClasses: the owner has no active classes to export.
var ErrExportNoClasses = errors.New("no classes to export")

// ExportService renders the weekly class table as a downloadable file.
type ExportService interface {
	// ExportXLSX returns the schedule as an Excel workbook plus a filename.
	ExportXLSX(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportICS returns the schedule as a weekly-recurring calendar.
	ExportICS(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo    *repository.Repository
	ownerID string
	loc     *time.Location
	logger  *zap.Logger
}

// NewExportService builds an ExportService.
func NewExportService(repo *repository.Repository, ownerID string, loc *time.Location, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, ownerID: ownerID, loc: loc, logger: logger}
}

// dayOrder positions weekday symbols Sunday-first to match the academic week.
var dayOrder = map[string]int{
	"Sun": 0, "Mon": 1, "Tue": 2, "Wed": 3, "Thu": 4, "Fri": 5, "Sat": 6,
}

func (s *exportService) listSorted(ctx context.Context) ([]model.Class, error) {
	classes, err := s.repo.Class.ListByOwner(ctx, s.ownerID)
	if err != nil {
		s.logger.Error("list classes for export failed", zap.Error(err))
		return nil, err
	}
	if len(classes) == 0 {
		return nil, ErrExportNoClasses
	}
	// Repo orders by days_of_week (alphabetic); re-sort Sunday-first.
	sorted := make([]model.Class, len(classes))
	copy(sorted, classes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if dayOrder[sorted[i].DaysOfWeek] != dayOrder[sorted[j].DaysOfWeek] {
			return dayOrder[sorted[i].DaysOfWeek] < dayOrder[sorted[j].DaysOfWeek]
		}
		return sorted[i].StartTime < sorted[j].StartTime
	})
	return sorted, nil
}

func (s *exportService) ExportXLSX(ctx context.Context) (*bytes.Buffer, string, error) {
	classes, err := s.listSorted(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Schedule"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Day", "Code", "Class", "Start", "End", "Location", "Instructor", "Bring"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, c := range classes {
		values := []interface{}{
			c.DaysOfWeek, c.ClassCode, c.ClassName,
			c.StartTime, c.EndTime, c.Location, c.InstructorName, c.BringItems,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", fmt.Errorf("generate workbook: %w", err)
	}

	return buf, "masar-schedule.xlsx", nil
}

func (s *exportService) ExportICS(ctx context.Context) (*bytes.Buffer, string, error) {
	classes, err := s.listSorted(ctx)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Masar//Schedule//EN")

	now := time.Now().In(s.loc)
	for i, c := range classes {
		start, err := s.nextOccurrence(now, c.DaysOfWeek, c.StartTime)
		if err != nil {
			// Unparsable rows are dropped from the calendar, same policy as
			// the window filter.
			s.logger.Warn("skipping class in ICS export",
				zap.String("class_code", c.ClassCode), zap.Error(err))
			continue
		}
		end, err := s.nextOccurrence(now, c.DaysOfWeek, c.EndTime)
		if err != nil {
			s.logger.Warn("skipping class in ICS export",
				zap.String("class_code", c.ClassCode), zap.Error(err))
			continue
		}

		e := cal.AddEvent(fmt.Sprintf("class-%d-%s-%s@masar", i, c.ClassCode, c.DaysOfWeek))
		e.SetSummary(fmt.Sprintf("%s (%s)", c.ClassName, c.ClassCode))
		e.SetLocation(c.Location)
		if c.InstructorName != "" {
			e.SetDescription("Instructor: " + c.InstructorName)
		}
		e.SetStartAt(start)
		e.SetEndAt(end)
		e.SetDtStampTime(now)
		e.AddRrule("FREQ=WEEKLY")
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "masar-schedule.ics", nil
}

// nextOccurrence finds the next calendar date (today included) whose weekday
// symbol matches day, at the given wall-clock time.
func (s *exportService) nextOccurrence(now time.Time, day, clock string) (time.Time, error) {
	t, err := timetable.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	d := now
	for i := 0; i < 7; i++ {
		if d.Format("Mon") == day {
			return time.Date(d.Year(), d.Month(), d.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, s.loc), nil
		}
		d = d.AddDate(0, 0, 1)
	}
	return time.Time{}, fmt.Errorf("unknown weekday symbol %q", day)
}
