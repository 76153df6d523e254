package handler

import "github.com/juriqh/masar-notes-buddy/internal/service"

// Handler aggregates all HTTP handlers of the control surface.
type Handler struct {
	Ingest   *IngestHandler
	Schedule *ScheduleHandler
	Notes    *NotesHandler
	Export   *ExportHandler
}

// NewHandler wires the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Ingest:   NewIngestHandler(svc.Ingest),
		Schedule: NewScheduleHandler(svc.Schedule),
		Notes:    NewNotesHandler(svc.Notes),
		Export:   NewExportHandler(svc.Export),
	}
}
