package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/juriqh/masar-notes-buddy/internal/dto"
	"github.com/juriqh/masar-notes-buddy/internal/service"
	"github.com/juriqh/masar-notes-buddy/pkg/response"
)

// NotesHandler stores and lists class notes.
type NotesHandler struct {
	notesSvc service.NotesService
}

// NewNotesHandler creates a NotesHandler.
func NewNotesHandler(notesSvc service.NotesService) *NotesHandler {
	return &NotesHandler{notesSvc: notesSvc}
}

// Create attaches a note to a class.
// POST /api/v1/notes
func (h *NotesHandler) Create(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 30001, "invalid request body: "+err.Error())
		return
	}

	note, err := h.notesSvc.Upload(c.Request.Context(), req.ClassCode, req.NoteContent, req.NoteType)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.NotFound(c, 30101, "class not found: "+req.ClassCode)
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, note)
}

// List returns the owner's notes, optionally filtered by class code.
// GET /api/v1/notes?class_code=1001
func (h *NotesHandler) List(c *gin.Context) {
	notes, err := h.notesSvc.List(c.Request.Context(), c.Query("class_code"))
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.NotFound(c, 30101, "class not found: "+c.Query("class_code"))
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, notes)
}
