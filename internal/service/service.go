package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/juriqh/masar-notes-buddy/config"
	"github.com/juriqh/masar-notes-buddy/internal/repository"
	"github.com/juriqh/masar-notes-buddy/internal/vision"
)

// ScheduleExtractor is the slice of the vision client the ingest path needs.
type ScheduleExtractor interface {
	ExtractSchedule(ctx context.Context, image []byte, mimeType string) ([]vision.ExtractedClassRecord, error)
}

// TextAnswerer is the slice of the vision client the assistant fallback needs.
type TextAnswerer interface {
	Answer(ctx context.Context, prompt string) (string, error)
}

// Service aggregates all business services.
type Service struct {
	Schedule  ScheduleService
	Ingest    IngestService
	Assistant AssistantService
	Notes     NotesService
	Export    ExportService
}

// NewService wires the service aggregate. loc is the fixed local timezone all
// day/time comparisons run in; model is the vision client (it satisfies both
// extractor and answerer, and may be nil when the binary has no Gemini key).
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	model *vision.Client,
	loc *time.Location,
	logger *zap.Logger,
) *Service {
	var extractor ScheduleExtractor
	var answerer TextAnswerer
	if model != nil {
		extractor = model
		answerer = model
	}

	schedule := NewScheduleService(repo, cfg.Assist.OwnerID, loc, logger)
	notes := NewNotesService(repo, cfg.Assist.OwnerID, loc, logger)

	return &Service{
		Schedule:  schedule,
		Ingest:    NewIngestService(repo, extractor, cfg.Assist.OwnerID, logger),
		Assistant: NewAssistantService(repo, schedule, notes, answerer, cfg.Assist.OwnerID, loc, logger),
		Notes:     notes,
		Export:    NewExportService(repo, cfg.Assist.OwnerID, loc, logger),
	}
}
