package routes

import (
	"net/http"
	"time"

	"farmhub/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterScheduleRoutes registers schedule endpoints.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.GET("", hb.Schedule.GetSchedule)
		api.GET("/list", hb.Schedule.ListSchedules)
		api.GET("/weekly", hb.Schedule.GetWeeklySchedule)
		api.POST("/update", hb.Schedule.UpdateSchedule)
		api.POST("/create", hb.Schedule.CreateSchedulePair)
		api.POST("/publish", hb.Schedule.PublishSchedule)
	}
}

// RegisterReportRoutes registers report endpoints.
func RegisterReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reports")
	{
		api.GET("", hb.Reports.GetReports)
		api.POST("", hb.Reports.CreateReport)
	}
}

// RegisterTaskRoutes registers task endpoints.
func RegisterTaskRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/task")
	{
		api.GET("/list", hb.Tasks.ListTasks)
		api.POST("/comment-counts", hb.Tasks.CommentCounts)
	}
}

// RegisterHealthRoute registers the liveness endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterScheduleRoutes(r, hb)
	RegisterReportRoutes(r, hb)
	RegisterTaskRoutes(r, hb)
	RegisterHealthRoute(r)
}
