package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/juriqh/masar-notes-buddy/internal/service"
	"github.com/juriqh/masar-notes-buddy/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler serves the weekly schedule as downloadable files.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportXLSX downloads the schedule as an Excel workbook.
// GET /api/v1/export/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	h.serve(c, xlsxContentType, h.exportSvc.ExportXLSX)
}

// ExportICS downloads the schedule as a weekly-recurring calendar.
// GET /api/v1/export/ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	h.serve(c, icsContentType, h.exportSvc.ExportICS)
}

func (h *ExportHandler) serve(c *gin.Context, contentType string, export func(context.Context) (*bytes.Buffer, string, error)) {
	buf, filename, err := export(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrExportNoClasses) {
			response.NotFound(c, 40101, "no classes to export")
			return
		}
		response.InternalError(c)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
