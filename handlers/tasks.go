package handlers

import (
	"net/http"

	"farmhub/services/tasks"
	"farmhub/utils"

	"github.com/gin-gonic/gin"
)

// TaskHandler exposes task comment counts.
type TaskHandler struct {
	Comments tasks.CommentService
}

func NewTaskHandler(svc tasks.CommentService) *TaskHandler {
	return &TaskHandler{Comments: svc}
}

// CommentCounts resolves comment counts for a batch of task names.
func (h *TaskHandler) CommentCounts(c *gin.Context) {
	var req struct {
		Names []string `json:"names"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Names) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Missing task names", "")
		return
	}

	counts, err := h.Comments.CountsForTasks(c.Request.Context(), req.Names)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load comment counts", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// ListTasks returns every task name, memoized by the list-level cache.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	names, err := h.Comments.ListTaskNames(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list tasks", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": names})
}
