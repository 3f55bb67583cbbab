package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Record store configuration.
	StoreBaseURL    string  `mapstructure:"STORE_BASE_URL"`
	StoreAPIToken   string  `mapstructure:"STORE_API_TOKEN"`
	StoreVersion    string  `mapstructure:"STORE_VERSION"`
	StoreRatePerSec float64 `mapstructure:"STORE_RATE_PER_SEC"`

	// Root identifiers in the record store.
	ScheduleRootID   string `mapstructure:"SCHEDULE_ROOT_ID"`
	ReportsRootID    string `mapstructure:"REPORTS_ROOT_ID"`
	TasksContainerID string `mapstructure:"TASKS_CONTAINER_ID"`

	// Redis configuration (asynq report worker).
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisReportQueueDB int    `mapstructure:"REDIS_REPORT_QUEUE_DB"`

	// Minutes between automatic report checks.
	ReportCheckInterval int `mapstructure:"REPORT_CHECK_INTERVAL_MIN"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("STORE_BASE_URL", "https://api.notion.com/v1")
	viper.SetDefault("STORE_VERSION", "2022-06-28")
	viper.SetDefault("STORE_RATE_PER_SEC", 3)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_REPORT_QUEUE_DB", 0)
	viper.SetDefault("REPORT_CHECK_INTERVAL_MIN", 5)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
