package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/juriqh/masar-notes-buddy/internal/dto"
	"github.com/juriqh/masar-notes-buddy/internal/model"
	"github.com/juriqh/masar-notes-buddy/internal/repository"
)

// ErrClassNotFound: no class row matches the given code for the owner.
// An explicit result instead of a raised "not found" so callers are forced
// to render the empty case.
var ErrClassNotFound = errors.New("class not found")

// NotesService stores and lists notes attached to classes.
type NotesService interface {
	// Upload attaches a note to the class identified by code.
	Upload(ctx context.Context, classCode, content, noteType string) (*dto.NoteResponse, error)
	// List returns the owner's notes, optionally restricted to one class code.
	List(ctx context.Context, classCode string) ([]dto.NoteResponse, error)
}

type notesService struct {
	repo    *repository.Repository
	ownerID string
	loc     *time.Location
	logger  *zap.Logger
}

// NewNotesService builds a NotesService.
func NewNotesService(repo *repository.Repository, ownerID string, loc *time.Location, logger *zap.Logger) NotesService {
	return &notesService{repo: repo, ownerID: ownerID, loc: loc, logger: logger}
}

func (s *notesService) Upload(ctx context.Context, classCode, content, noteType string) (*dto.NoteResponse, error) {
	class, err := s.repo.Class.GetByOwnerAndCode(ctx, s.ownerID, classCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrClassNotFound, classCode)
		}
		s.logger.Error("class lookup failed", zap.Error(err))
		return nil, err
	}

	if noteType == "" {
		noteType = "text"
	}

	note := model.NoteUpload{
		UserID:      s.ownerID,
		ClassID:     class.ID,
		NoteContent: content,
		NoteType:    noteType,
		UploadDate:  time.Now().In(s.loc),
	}
	if err := s.repo.Note.Create(ctx, &note); err != nil {
		s.logger.Error("note insert failed", zap.Error(err))
		return nil, err
	}

	return &dto.NoteResponse{
		ID:          note.ID,
		ClassCode:   class.ClassCode,
		ClassName:   class.ClassName,
		NoteContent: note.NoteContent,
		NoteType:    note.NoteType,
		UploadDate:  note.UploadDate.Format("2006-01-02"),
	}, nil
}

func (s *notesService) List(ctx context.Context, classCode string) ([]dto.NoteResponse, error) {
	classID := ""
	if classCode != "" {
		class, err := s.repo.Class.GetByOwnerAndCode(ctx, s.ownerID, classCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrClassNotFound, classCode)
			}
			return nil, err
		}
		classID = class.ID
	}

	notes, err := s.repo.Note.ListByOwner(ctx, s.ownerID, classID)
	if err != nil {
		s.logger.Error("list notes failed", zap.Error(err))
		return nil, err
	}

	out := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		resp := dto.NoteResponse{
			ID:          n.ID,
			NoteContent: n.NoteContent,
			NoteType:    n.NoteType,
			UploadDate:  n.UploadDate.In(s.loc).Format("2006-01-02"),
		}
		if n.Class != nil {
			resp.ClassCode = n.Class.ClassCode
			resp.ClassName = n.Class.ClassName
		}
		out = append(out, resp)
	}
	return out, nil
}
