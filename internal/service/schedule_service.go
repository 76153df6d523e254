package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/juriqh/masar-notes-buddy/internal/dto"
	"github.com/juriqh/masar-notes-buddy/internal/model"
	"github.com/juriqh/masar-notes-buddy/internal/repository"
	"github.com/juriqh/masar-notes-buddy/internal/timetable"
)

// ScheduleService answers day-schedule queries over the owner's class table.
// All lookups are textual weekday-symbol matches in the fixed timezone; there
// is no calendar-date arithmetic, the table is assumed current indefinitely.
type ScheduleService interface {
	// TodayBlocks returns today's merged schedule.
	TodayBlocks(ctx context.Context, now time.Time) (*dto.ScheduleResponse, error)
	// TomorrowBlocks returns tomorrow's merged schedule.
	TomorrowBlocks(ctx context.Context, now time.Time) (*dto.ScheduleResponse, error)
	// UpcomingBlocks returns today's merged entries starting within
	// [now, now+lookahead].
	UpcomingBlocks(ctx context.Context, now time.Time, lookahead time.Duration) ([]dto.ClassBlock, error)
	// CompletedToday lists classes counted as done because notes were
	// uploaded for them since local midnight.
	CompletedToday(ctx context.Context, now time.Time) ([]dto.CompletedClass, error)
}

type scheduleService struct {
	repo    *repository.Repository
	ownerID string
	loc     *time.Location
	logger  *zap.Logger
}

// NewScheduleService builds a ScheduleService.
func NewScheduleService(repo *repository.Repository, ownerID string, loc *time.Location, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, ownerID: ownerID, loc: loc, logger: logger}
}

func (s *scheduleService) TodayBlocks(ctx context.Context, now time.Time) (*dto.ScheduleResponse, error) {
	return s.dayBlocks(ctx, timetable.DaySymbol(now, s.loc))
}

func (s *scheduleService) TomorrowBlocks(ctx context.Context, now time.Time) (*dto.ScheduleResponse, error) {
	return s.dayBlocks(ctx, timetable.DaySymbol(now.AddDate(0, 0, 1), s.loc))
}

func (s *scheduleService) dayBlocks(ctx context.Context, day string) (*dto.ScheduleResponse, error) {
	classes, err := s.repo.Class.ListByOwner(ctx, s.ownerID)
	if err != nil {
		s.logger.Error("list classes failed", zap.Error(err))
		return nil, err
	}

	entries := timetable.FilterByDay(classes, day)
	timetable.SortByStart(entries)
	merged := timetable.MergeAdjacent(entries)

	return &dto.ScheduleResponse{Day: day, Classes: toBlocks(merged, day)}, nil
}

func (s *scheduleService) UpcomingBlocks(ctx context.Context, now time.Time, lookahead time.Duration) ([]dto.ClassBlock, error) {
	classes, err := s.repo.Class.ListByOwner(ctx, s.ownerID)
	if err != nil {
		s.logger.Error("list classes failed", zap.Error(err))
		return nil, err
	}

	matched, skipped := timetable.FilterWindow(classes, now, lookahead, s.loc)
	for _, c := range skipped {
		// Unparsable start times drop the entry, never the request.
		s.logger.Warn("skipping class with unparsable start time",
			zap.String("class_code", c.ClassCode),
			zap.String("start_time", c.StartTime),
		)
	}

	timetable.SortByStart(matched)
	merged := timetable.MergeAdjacent(matched)

	return toBlocks(merged, timetable.DaySymbol(now, s.loc)), nil
}

func (s *scheduleService) CompletedToday(ctx context.Context, now time.Time) ([]dto.CompletedClass, error) {
	local := now.In(s.loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)

	notes, err := s.repo.Note.ListUploadedSince(ctx, s.ownerID, midnight)
	if err != nil {
		s.logger.Error("list today's notes failed", zap.Error(err))
		return nil, err
	}

	var completed []dto.CompletedClass
	seen := make(map[string]bool)
	for _, n := range notes {
		if n.Class == nil || seen[n.ClassID] {
			continue
		}
		seen[n.ClassID] = true
		completed = append(completed, dto.CompletedClass{
			ClassCode:  n.Class.ClassCode,
			ClassName:  n.Class.ClassName,
			UploadedAt: n.CreatedAt.In(s.loc).Format("15:04"),
		})
	}
	return completed, nil
}

func toBlocks(classes []model.Class, day string) []dto.ClassBlock {
	blocks := make([]dto.ClassBlock, 0, len(classes))
	for _, c := range classes {
		blocks = append(blocks, dto.ClassBlock{
			ClassCode:      c.ClassCode,
			ClassName:      c.ClassName,
			Location:       c.Location,
			Day:            day,
			StartTime:      c.StartTime,
			EndTime:        c.EndTime,
			InstructorName: c.InstructorName,
			BringItems:     c.BringItems,
		})
	}
	return blocks
}
