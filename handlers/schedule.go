package handlers

import (
	"errors"
	"net/http"

	"farmhub/services/schedule"
	"farmhub/utils"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler exposes the schedule engine over HTTP.
type ScheduleHandler struct {
	Service schedule.Service
}

func NewScheduleHandler(svc schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

// GetSchedule returns the assignment matrix for a date (or the globally
// selected one). Reads degrade to an empty matrix, never an error response.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	matrix := h.Service.Load(c.Request.Context(), schedule.LoadOptions{
		DateLabel: c.Query("date"),
		Staging:   c.Query("staging") == "true",
	})
	c.JSON(http.StatusOK, matrix)
}

// ListSchedules returns every discoverable schedule container.
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	registry, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondScheduleError(c, err, "Failed to list schedules")
		return
	}
	c.JSON(http.StatusOK, registry)
}

// UpdateSchedule applies one assignment mutation.
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	var req schedule.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Person == "" || req.SlotKey == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing person or slot", "")
		return
	}

	result, err := h.Service.UpdateAssignment(c.Request.Context(), req)
	if err != nil {
		respondScheduleError(c, err, "Failed to update schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

type dateLabelRequest struct {
	DateLabel string `json:"dateLabel"`
}

// CreateSchedulePair ensures the live/staging pair exists for a date.
func (h *ScheduleHandler) CreateSchedulePair(c *gin.Context) {
	var req dateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DateLabel == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing dateLabel", "")
		return
	}

	pair, err := h.Service.CreatePair(c.Request.Context(), req.DateLabel)
	if err != nil {
		respondScheduleError(c, err, "Failed to create schedule pair")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "liveId": pair.LiveID, "stagingId": pair.StagingID})
}

// PublishSchedule converges the live container to its staging copy.
func (h *ScheduleHandler) PublishSchedule(c *gin.Context) {
	var req dateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DateLabel == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing dateLabel", "")
		return
	}

	if err := h.Service.Publish(c.Request.Context(), req.DateLabel); err != nil {
		respondScheduleError(c, err, "Failed to publish schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetWeeklySchedule returns the weekly view for the week containing the
// given (or globally selected) date.
func (h *ScheduleHandler) GetWeeklySchedule(c *gin.Context) {
	view, err := h.Service.LoadWeek(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondScheduleError(c, err, "Failed to load weekly schedule")
		return
	}
	c.JSON(http.StatusOK, view)
}

func respondScheduleError(c *gin.Context, err error, fallback string) {
	var notFound *schedule.NotFoundError
	if errors.As(err, &notFound) {
		utils.JSONError(c, http.StatusNotFound, notFound.Message, "")
		return
	}
	if errors.Is(err, schedule.ErrRootNotPaged) {
		utils.JSONError(c, http.StatusBadRequest, "Schedule root is not a page", "")
		return
	}
	var config *schedule.ConfigError
	if errors.As(err, &config) {
		utils.JSONError(c, http.StatusInternalServerError, config.Error(), "")
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, fallback, err.Error())
}
