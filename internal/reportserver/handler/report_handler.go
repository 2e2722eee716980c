package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/sarrafi-backoffice/internal/reportserver/service"
)

// ReportHandler handles HTTP requests for the consolidated net-worth report
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// GetNetWorth serves the consolidated net-worth report. Missing exchange
// rates surface in the payload as warnings, never as a failed request.
func (h *ReportHandler) GetNetWorth(c *gin.Context) {
	report, err := h.reportService.GetNetWorth(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to produce net worth report", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, report)
}
