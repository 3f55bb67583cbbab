package handlers

import (
	"net/http"

	"farmhub/models"
	"farmhub/services/report"
	"farmhub/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler exposes report listing and the auto-report trigger.
type ReportHandler struct {
	Service report.Service
}

func NewReportHandler(svc report.Service) *ReportHandler {
	return &ReportHandler{Service: svc}
}

// GetReports lists produced reports when ?list=1; otherwise it runs one
// auto-report evaluation and returns the outcome.
func (h *ReportHandler) GetReports(c *gin.Context) {
	if c.Query("list") != "" {
		reports, err := h.Service.ListReports(c.Request.Context())
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "Could not load reports", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"reports": reports})
		return
	}

	outcome := h.Service.EnsureDailyReport(c.Request.Context())
	status := http.StatusOK
	if outcome.Status == models.ReportError {
		status = http.StatusInternalServerError
	}
	c.JSON(status, outcome)
}

// CreateReport produces a report for the current schedule immediately.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	id, err := h.Service.CreateNow(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to create report", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reportId": id})
}
