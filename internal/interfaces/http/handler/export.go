package handler

import (
	"fmt"
	"net/http"
	"strings"

	reportapp "github.com/blindtest/backend/internal/application/report"
	"github.com/blindtest/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Export content types
const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// ExportHandler serves CSV, XLSX and PDF downloads of the audit data
type ExportHandler struct {
	BaseHandler
	exportService *reportapp.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *reportapp.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// RegisterRoutes registers export routes
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	exports := rg.Group("/exports")
	{
		exports.GET("/tests/site.csv", h.SiteTestsCSV)
		exports.GET("/tests/site.xlsx", h.SiteTestsXLSX)
		exports.GET("/tests/line.csv", h.LineTestsCSV)
		exports.GET("/tests/line.xlsx", h.LineTestsXLSX)
		exports.GET("/programs/:id/review.pdf", h.ProgramReviewPDF)
	}
}

// SiteTestsCSV downloads site tests as CSV
func (h *ExportHandler) SiteTestsCSV(c *gin.Context) {
	query, ok := h.bindQuery(c)
	if !ok {
		return
	}

	data, err := h.exportService.SiteTestsCSV(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	serveDownload(c, contentTypeCSV, "tests_site.csv", data)
}

// SiteTestsXLSX downloads site tests as an Excel workbook
func (h *ExportHandler) SiteTestsXLSX(c *gin.Context) {
	query, ok := h.bindQuery(c)
	if !ok {
		return
	}

	data, err := h.exportService.SiteTestsXLSX(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	serveDownload(c, contentTypeXLSX, "tests_site.xlsx", data)
}

// LineTestsCSV downloads line tests as CSV
func (h *ExportHandler) LineTestsCSV(c *gin.Context) {
	query, ok := h.bindQuery(c)
	if !ok {
		return
	}

	data, err := h.exportService.LineTestsCSV(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	serveDownload(c, contentTypeCSV, "tests_ligne.csv", data)
}

// LineTestsXLSX downloads line tests as an Excel workbook
func (h *ExportHandler) LineTestsXLSX(c *gin.Context) {
	query, ok := h.bindQuery(c)
	if !ok {
		return
	}

	data, err := h.exportService.LineTestsXLSX(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	serveDownload(c, contentTypeXLSX, "tests_ligne.xlsx", data)
}

// ProgramReviewPDF downloads the printable review document for one program
func (h *ExportHandler) ProgramReviewPDF(c *gin.Context) {
	programID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	data, err := h.exportService.ProgramReviewPDF(c.Request.Context(), programID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	serveDownload(c, contentTypePDF, fmt.Sprintf("bilan_%s.pdf", programID), data)
}

func (h *ExportHandler) bindQuery(c *gin.Context) (reportapp.ExportQuery, bool) {
	var query reportapp.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return query, false
	}
	return query, true
}

func serveDownload(c *gin.Context, contentType, filename string, data []byte) {
	// The filenames are ASCII; quoting keeps any future change safe
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, strings.ReplaceAll(filename, `"`, "")))
	c.Data(http.StatusOK, contentType, data)
}
