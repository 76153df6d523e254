package notifier

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/juriqh/masar-notes-buddy/internal/dto"
	"github.com/juriqh/masar-notes-buddy/internal/service"
	"github.com/juriqh/masar-notes-buddy/pkg/redis"
)

// Sender delivers the two daily notifications to a chat surface.
type Sender interface {
	SendMorning(ctx context.Context, upcoming []dto.ClassBlock) error
	SendEvening(ctx context.Context, tomorrow []dto.ClassBlock, completed []dto.CompletedClass) error
}

const (
	kindMorning = "morning"
	kindEvening = "evening"

	// markerTTL outlives the day so a marker never expires mid-day, but
	// does not linger past the next occurrence.
	markerTTL = 26 * time.Hour
)

// Scheduler is the minute polling loop behind the daily reminders. It fires
// each kind at most once per local date: a Redis marker covers restarts, an
// in-process guard covers the no-Redis case within one run.
type Scheduler struct {
	schedule  service.ScheduleService
	sender    Sender
	rdb       *redis.Client
	loc       *time.Location
	morningAt string
	eveningAt string
	lookahead time.Duration
	logger    *zap.Logger

	// lastFired maps kind to the local date it last fired in this process.
	lastFired map[string]string
}

// New builds a Scheduler. rdb may be nil.
func New(
	schedule service.ScheduleService,
	sender Sender,
	rdb *redis.Client,
	loc *time.Location,
	morningAt, eveningAt string,
	lookahead time.Duration,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		schedule:  schedule,
		sender:    sender,
		rdb:       rdb,
		loc:       loc,
		morningAt: morningAt,
		eveningAt: eveningAt,
		lookahead: lookahead,
		logger:    logger,
		lastFired: make(map[string]string),
	}
}

// Run polls once a minute until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("notifier loop started",
		zap.String("morning_at", s.morningAt),
		zap.String("evening_at", s.eveningAt),
		zap.String("timezone", s.loc.String()),
	)

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("notifier loop stopped")
			return
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

// tick fires whichever trigger matches the current local wall-clock minute.
func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	local := now.In(s.loc)
	clock := local.Format("15:04")

	switch clock {
	case s.morningAt:
		s.fire(ctx, kindMorning, local, s.sendMorning)
	case s.eveningAt:
		s.fire(ctx, kindEvening, local, s.sendEvening)
	}
}

func (s *Scheduler) fire(ctx context.Context, kind string, local time.Time, send func(context.Context, time.Time) error) {
	date := local.Format("2006-01-02")
	if !s.claim(ctx, kind, date) {
		return
	}

	if err := send(ctx, local); err != nil {
		s.logger.Error("notification send failed",
			zap.String("kind", kind), zap.Error(err))
		return
	}
	s.logger.Info("notification sent",
		zap.String("kind", kind), zap.String("date", date))
}

// claim reserves (kind, date). The in-process guard runs first so a Redis
// outage mid-day cannot re-fire a kind this run already delivered.
func (s *Scheduler) claim(ctx context.Context, kind, date string) bool {
	if s.lastFired[kind] == date {
		return false
	}
	s.lastFired[kind] = date

	if s.rdb == nil {
		return true
	}
	ok, err := s.rdb.MarkSent(ctx, kind, date, markerTTL)
	if err != nil {
		// Degraded mode: the in-process guard above still debounces.
		s.logger.Warn("send marker unavailable, continuing without it",
			zap.String("kind", kind), zap.Error(err))
		return true
	}
	return ok
}

func (s *Scheduler) sendMorning(ctx context.Context, local time.Time) error {
	upcoming, err := s.schedule.UpcomingBlocks(ctx, local, s.lookahead)
	if err != nil {
		return err
	}
	return s.sender.SendMorning(ctx, upcoming)
}

func (s *Scheduler) sendEvening(ctx context.Context, local time.Time) error {
	tomorrow, err := s.schedule.TomorrowBlocks(ctx, local)
	if err != nil {
		return err
	}
	completed, err := s.schedule.CompletedToday(ctx, local)
	if err != nil {
		// The summary is still worth sending without the completed list.
		s.logger.Warn("completed-classes lookup failed", zap.Error(err))
		completed = nil
	}
	return s.sender.SendEvening(ctx, tomorrow.Classes, completed)
}
