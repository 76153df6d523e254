package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/juriqh/masar-notes-buddy/internal/dto"
	"github.com/juriqh/masar-notes-buddy/internal/model"
	"github.com/juriqh/masar-notes-buddy/internal/repository"
	"github.com/juriqh/masar-notes-buddy/internal/timetable"
)

// ── Ingest business errors ──

var (
	// ErrExtractionFailed: the model reply held no parsable class array.
	ErrExtractionFailed = errors.New("schedule extraction failed")
	// ErrExtractionEmpty: extraction succeeded but reported zero classes.
	ErrExtractionEmpty = errors.New("no classes found in image")
	// ErrVisionUnavailable: the binary was started without a Gemini key.
	ErrVisionUnavailable = errors.New("vision model not configured")
	// ErrBadDayNumber: a record carried a day number outside 1-7. The whole
	// batch is rejected: a nonsense day means the extraction as a whole is
	// untrusted.
	ErrBadDayNumber = errors.New("extracted record has invalid day number")
)

// IngestService turns a schedule photo into class rows.
type IngestService interface {
	// ProcessImage runs extract → validate → de-duplicate → bulk insert.
	// The staged set goes in as one batch that succeeds or fails whole;
	// partial failures are not attributed back to source records.
	ProcessImage(ctx context.Context, image []byte, mimeType string) (*dto.ProcessScheduleResponse, error)
}

type ingestService struct {
	repo      *repository.Repository
	extractor ScheduleExtractor
	ownerID   string
	logger    *zap.Logger
}

// NewIngestService builds an IngestService.
func NewIngestService(repo *repository.Repository, extractor ScheduleExtractor, ownerID string, logger *zap.Logger) IngestService {
	return &ingestService{repo: repo, extractor: extractor, ownerID: ownerID, logger: logger}
}

func (s *ingestService) ProcessImage(ctx context.Context, image []byte, mimeType string) (*dto.ProcessScheduleResponse, error) {
	if s.extractor == nil {
		return nil, ErrVisionUnavailable
	}

	records, err := s.extractor.ExtractSchedule(ctx, image, mimeType)
	if err != nil {
		s.logger.Warn("vision extraction failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}
	if len(records) == 0 {
		return nil, ErrExtractionEmpty
	}

	var staged []model.Class
	for _, rec := range records {
		day, err := timetable.DayName(rec.DayNumber)
		if err != nil {
			// Loud rejection instead of the inherited index fault.
			return nil, fmt.Errorf("%w: course %q day %d: %v",
				ErrBadDayNumber, rec.CourseCode, rec.DayNumber, err)
		}

		start, err := timetable.NormalizeClock(rec.StartTime)
		if err != nil {
			return nil, fmt.Errorf("course %q: %w", rec.CourseCode, err)
		}
		end, err := timetable.NormalizeClock(rec.EndTime)
		if err != nil {
			return nil, fmt.Errorf("course %q: %w", rec.CourseCode, err)
		}

		exists, err := s.repo.Class.ExistsByOwnerCodeDay(ctx, s.ownerID, rec.CourseCode, day)
		if err != nil {
			return nil, fmt.Errorf("dedup lookup: %w", err)
		}
		if exists {
			// Already imported; changed times or location on a re-scan are
			// ignored by contract, this is not an update path.
			s.logger.Info("class already exists, skipping",
				zap.String("class_code", rec.CourseCode),
				zap.String("day", day),
			)
			continue
		}

		staged = append(staged, model.Class{
			UserID:              s.ownerID,
			ClassCode:           rec.CourseCode,
			ClassName:           rec.CourseNameArabic,
			Location:            composeLocation(rec.Building, rec.Floor, rec.Wing, rec.Room),
			DaysOfWeek:          day,
			StartTime:           start,
			EndTime:             end,
			InstructorName:      rec.InstructorName,
			RemindBeforeMinutes: 30,
			Active:              true,
		})
	}

	if err := s.repo.Class.BatchInsert(ctx, staged); err != nil {
		s.logger.Error("bulk insert failed", zap.Error(err), zap.Int("staged", len(staged)))
		return nil, fmt.Errorf("insert classes: %w", err)
	}

	s.logger.Info("schedule ingested",
		zap.Int("classes_found", len(records)),
		zap.Int("classes_inserted", len(staged)),
	)

	return &dto.ProcessScheduleResponse{
		ClassesFound:    len(records),
		ClassesInserted: len(staged),
	}, nil
}

func composeLocation(building, floor, wing, room string) string {
	return fmt.Sprintf("Building %s, Floor %s, Wing %s, Room %s", building, floor, wing, room)
}
