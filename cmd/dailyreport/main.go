// Command dailyreport evaluates the auto-report trigger once and exits.
// It prints a single human-readable line describing the outcome; cron or a
// shell wrapper can run it instead of the background worker.
package main

import (
	"context"
	"fmt"
	"os"

	"farmhub/config"
	"farmhub/models"
	"farmhub/services/report"
	"farmhub/services/schedule"
	"farmhub/store"
	"farmhub/utils"
)

func main() {
	config.LoadConfig()

	logger := utils.GetLogger()
	defer logger.Sync()

	storeClient := store.NewHTTPClient(
		config.AppConfig.StoreBaseURL,
		config.AppConfig.StoreAPIToken,
		config.AppConfig.StoreVersion,
		config.AppConfig.StoreRatePerSec,
		logger,
	)

	scheduleSvc := &schedule.DefaultScheduleService{
		Store:  storeClient,
		RootID: config.AppConfig.ScheduleRootID,
		Logger: logger,
	}
	reportSvc := &report.DefaultReportService{
		Schedule: scheduleSvc,
		Builder: &report.StoreBuilder{
			Store:  storeClient,
			RootID: config.AppConfig.ReportsRootID,
			Logger: logger,
		},
		Logger: logger,
	}

	outcome := reportSvc.EnsureDailyReport(context.Background())

	switch outcome.Status {
	case models.ReportCreated:
		fmt.Printf("Daily report created: %s\n", outcome.ReportID)
	case models.ReportPending:
		fmt.Printf("Report time has not arrived yet. Next run at %s.\n", outcome.NextRun)
	case models.ReportExists:
		fmt.Println("Report already exists for the current schedule.")
	case models.ReportNoSchedule:
		fmt.Println("No schedule assigned; skipping auto-report.")
	case models.ReportNoAutoTime:
		fmt.Println("No report time configured; skipping auto-report.")
	case models.ReportError:
		fmt.Printf("Auto-report failed: %s\n", outcome.Error)
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "unrecognized report outcome: %s\n", outcome.Status)
		os.Exit(1)
	}
}
