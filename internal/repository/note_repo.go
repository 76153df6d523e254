package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/juriqh/masar-notes-buddy/internal/model"
)

// NoteRepository is the data-access interface for the notes_uploads table.
type NoteRepository interface {
	Create(ctx context.Context, note *model.NoteUpload) error
	// ListByOwner returns the owner's notes with their class preloaded,
	// optionally restricted to one class.
	ListByOwner(ctx context.Context, ownerID, classID string) ([]model.NoteUpload, error)
	// ListUploadedSince returns notes created at or after the cutoff; the
	// evening summary derives "classes completed today" from it.
	ListUploadedSince(ctx context.Context, ownerID string, since time.Time) ([]model.NoteUpload, error)
}

type noteRepo struct {
	db *gorm.DB
}

// NewNoteRepo builds a NoteRepository.
func NewNoteRepo(db *gorm.DB) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Create(ctx context.Context, note *model.NoteUpload) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepo) ListByOwner(ctx context.Context, ownerID, classID string) ([]model.NoteUpload, error) {
	q := r.db.WithContext(ctx).Preload("Class").
		Where("user_id = ?", ownerID).
		Order("upload_date DESC")
	if classID != "" {
		q = q.Where("class_id = ?", classID)
	}
	var notes []model.NoteUpload
	err := q.Find(&notes).Error
	return notes, err
}

func (r *noteRepo) ListUploadedSince(ctx context.Context, ownerID string, since time.Time) ([]model.NoteUpload, error) {
	var notes []model.NoteUpload
	err := r.db.WithContext(ctx).Preload("Class").
		Where("user_id = ? AND created_at >= ?", ownerID, since).
		Order("created_at ASC").
		Find(&notes).Error
	return notes, err
}
