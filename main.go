package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmhub/config"
	"farmhub/cron"
	"farmhub/handlers"
	"farmhub/middleware"
	"farmhub/routes"
	"farmhub/services/report"
	"farmhub/services/schedule"
	"farmhub/services/tasks"
	"farmhub/store"
	"farmhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize logger
	logger := utils.GetLogger()
	defer logger.Sync()

	logger.Info("Starting farmhub server",
		zap.String("env", config.GetEnv()),
		zap.String("port", config.AppConfig.AppPort),
	)

	// External record store client
	storeClient := store.NewHTTPClient(
		config.AppConfig.StoreBaseURL,
		config.AppConfig.StoreAPIToken,
		config.AppConfig.StoreVersion,
		config.AppConfig.StoreRatePerSec,
		logger,
	)

	// Services
	scheduleSvc := &schedule.DefaultScheduleService{
		Store:  storeClient,
		RootID: config.AppConfig.ScheduleRootID,
		Logger: logger,
	}
	reportBuilder := &report.StoreBuilder{
		Store:  storeClient,
		RootID: config.AppConfig.ReportsRootID,
		Logger: logger,
	}
	reportSvc := &report.DefaultReportService{
		Schedule: scheduleSvc,
		Builder:  reportBuilder,
		Logger:   logger,
	}
	commentSvc := tasks.NewCommentService(storeClient, config.AppConfig.TasksContainerID, logger)

	// Handlers
	hb := &handlers.HandlerBundle{
		Schedule: handlers.NewScheduleHandler(scheduleSvc),
		Reports:  handlers.NewReportHandler(reportSvc),
		Tasks:    handlers.NewTaskHandler(commentSvc),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(r, hb)

	// Background report worker
	cron.InitReportWorker(reportSvc, logger)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
