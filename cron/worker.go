package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"farmhub/config"
	"farmhub/models"
	"farmhub/services/report"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReportEnsure = "report:ensure"

// InitReportWorker runs the periodic auto-report check in the background:
// a scheduler enqueues one report:ensure task per interval and the worker
// evaluates the trigger. Outcomes are logged, never retried; the trigger is
// idempotent, so the next interval simply observes the new state.
func InitReportWorker(reportSvc report.Service, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReportQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReportEnsure, handleReportTask(reportSvc, logger))

	interval := config.AppConfig.ReportCheckInterval
	if interval <= 0 {
		interval = 5
	}
	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register(fmt.Sprintf("@every %dm", interval), asynq.NewTask(TypeReportEnsure, nil)); err != nil {
		log.Fatalf("[ReportWorker] failed to register periodic report check: %v", err)
	}

	// Start Redis health monitor
	go monitorRedisConnection()

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[ReportWorker] scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReportWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReportWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReportWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReportTask(reportSvc report.Service, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		outcome := reportSvc.EnsureDailyReport(ctx)

		switch outcome.Status {
		case models.ReportCreated:
			logger.Info("scheduled report created", zap.String("reportId", outcome.ReportID))
		case models.ReportPending:
			logger.Debug("report time not reached", zap.String("nextRun", outcome.NextRun))
		case models.ReportExists, models.ReportNoSchedule, models.ReportNoAutoTime:
			logger.Debug("no report to create", zap.String("status", string(outcome.Status)))
		case models.ReportError:
			logger.Error("scheduled report failed", zap.String("error", outcome.Error))
		}
		// The engine never retries; the next interval re-evaluates.
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReportQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReportWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
