package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quadrantlabs/assessment-tracking-service/internal/services"
	"github.com/quadrantlabs/assessment-tracking-service/internal/utils"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv"
)

type ReportHandler struct {
	BaseHandler
	reportService services.ReportService
	exportService services.ExportService
}

func NewReportHandler(
	reportService services.ReportService,
	exportService services.ExportService,
	logger utils.Logger,
) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
		exportService: exportService,
	}
}

// GetTimeReport generates the response time report
// @Summary Get response time report
// @Description Computes corpus-wide response time statistics per question and per user
// @Tags reports
// @Accept json
// @Produce json
// @Success 200 {object} analytics.TimeReport
// @Failure 503 {object} ErrorResponse
// @Router /reports/times [get]
func (h *ReportHandler) GetTimeReport(c *gin.Context) {
	h.LogRequest(c, "Generating response time report")

	report, err := h.reportService.TimeReport(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetMovementReport generates the cursor movement report
// @Summary Get cursor movement report
// @Description Computes corpus-wide cursor movement statistics per question and per user
// @Tags reports
// @Accept json
// @Produce json
// @Success 200 {object} analytics.MovementReport
// @Failure 503 {object} ErrorResponse
// @Router /reports/movements [get]
func (h *ReportHandler) GetMovementReport(c *gin.Context) {
	h.LogRequest(c, "Generating cursor movement report")

	report, err := h.reportService.MovementReport(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetPatternReport generates the user pattern report
// @Summary Get user pattern report
// @Description Classifies users into behavioral categories from timing and cursor activity
// @Tags reports
// @Accept json
// @Produce json
// @Success 200 {object} analytics.UserPatternReport
// @Failure 503 {object} ErrorResponse
// @Router /reports/patterns [get]
func (h *ReportHandler) GetPatternReport(c *gin.Context) {
	h.LogRequest(c, "Generating user pattern report")

	report, err := h.reportService.PatternReport(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportReports downloads the full analysis as a file attachment
// @Summary Export reports
// @Description Exports submissions and reports as an Excel workbook or a CSV summary
// @Tags reports
// @Accept json
// @Produce application/octet-stream
// @Param format query string false "Export format: xlsx or csv" default(xlsx)
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /reports/export [get]
func (h *ReportHandler) ExportReports(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))

	h.LogRequest(c, "Exporting assessment reports", "format", format)

	var (
		data        []byte
		err         error
		contentType string
	)

	switch format {
	case "xlsx":
		data, err = h.exportService.ExportWorkbook(c.Request.Context())
		contentType = contentTypeXLSX
	case "csv":
		data, err = h.exportService.ExportSummariesCSV(c.Request.Context())
		contentType = contentTypeCSV
	default:
		h.handleServiceError(c, fmt.Errorf("%w: %s", services.ErrUnsupportedExportFormat, format))
		return
	}

	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("assessment_reports_%s.%s", time.Now().UTC().Format("20060102_150405"), format)
	h.LogInfo(c, "Report export ready", "filename", filename, "bytes", len(data))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}
