package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/juriqh/masar-notes-buddy/internal/dto"
	"github.com/juriqh/masar-notes-buddy/internal/service"
	"github.com/juriqh/masar-notes-buddy/pkg/response"
)

// IngestHandler accepts schedule photos for extraction.
type IngestHandler struct {
	ingestSvc service.IngestService
}

// NewIngestHandler creates an IngestHandler.
func NewIngestHandler(ingestSvc service.IngestService) *IngestHandler {
	return &IngestHandler{ingestSvc: ingestSvc}
}

// ProcessSchedule ingests one schedule photo.
// POST /api/process-schedule
// Body: {"fileName": "...", "base64Image": "..."} or {"filePath": "..."}.
func (h *IngestHandler) ProcessSchedule(c *gin.Context) {
	var req dto.ProcessScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 20001, "invalid request body: "+err.Error())
		return
	}

	image, err := h.loadImage(&req)
	if err != nil {
		response.BadRequest(c, 20002, err.Error())
		return
	}
	if len(image) == 0 {
		response.BadRequest(c, 20003, "one of base64Image or filePath is required")
		return
	}

	mimeType := http.DetectContentType(image)
	if !strings.HasPrefix(mimeType, "image/") {
		response.UnprocessableEntity(c, 20004, "payload is not an image")
		return
	}

	result, err := h.ingestSvc.ProcessImage(c.Request.Context(), image, mimeType)
	if err != nil {
		h.handleIngestError(c, err)
		return
	}

	response.OK(c, result)
}

// loadImage resolves the request body to raw image bytes. base64Image wins
// when both fields are present; a data-URL prefix is tolerated.
func (h *IngestHandler) loadImage(req *dto.ProcessScheduleRequest) ([]byte, error) {
	if req.Base64Image != "" {
		payload := req.Base64Image
		if i := strings.Index(payload, ","); i >= 0 && strings.HasPrefix(payload, "data:") {
			payload = payload[i+1:]
		}
		image, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, errors.New("base64Image is not valid base64")
		}
		return image, nil
	}

	if req.FilePath != "" {
		image, err := os.ReadFile(req.FilePath)
		if err != nil {
			return nil, errors.New("cannot read filePath: " + err.Error())
		}
		return image, nil
	}

	return nil, nil
}

func (h *IngestHandler) handleIngestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVisionUnavailable):
		response.Error(c, http.StatusServiceUnavailable, 20101, "vision model not configured")
	case errors.Is(err, service.ErrExtractionEmpty):
		response.UnprocessableEntity(c, 20102, "no classes found in image")
	case errors.Is(err, service.ErrBadDayNumber):
		response.UnprocessableEntity(c, 20103, err.Error())
	case errors.Is(err, service.ErrExtractionFailed):
		response.UnprocessableEntity(c, 20104, "schedule extraction failed")
	default:
		response.InternalError(c)
	}
}
