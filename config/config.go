package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	MAX_UPLOAD_MB=20
//	REPORT_TTL=15m
//	REQUEST_TIMEOUT=30s
//	RATE_LIMIT_RPS=1
//	RATE_LIMIT_BURST=60
//	TRACING_ENABLED=false
type Config struct {
	Server  ServerConfig  // HTTP server configuration
	Upload  UploadConfig  // Upload limits and report retention
	Tracing TracingConfig // OpenTelemetry settings
}

// ServerConfig holds HTTP server settings.
//
// Fields:
//   - Port: TCP port the HTTP server listens on (e.g., "8080").
//   - RequestTimeout: deadline applied to every request context.
//   - RateLimitRPS: sustained requests per second allowed per client IP.
//   - RateLimitBurst: requests a client IP may burst above RateLimitRPS.
type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// UploadConfig bounds uploaded files and generated reports.
type UploadConfig struct {
	MaxBytes  int64         // Largest accepted request body
	ReportTTL time.Duration // How long a generated workbook stays downloadable
}

// TracingConfig toggles span export.
type TracingConfig struct {
	Enabled bool
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or out of range, validateConfig() will
//     terminate the app with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", "30s")
	viper.SetDefault("RATE_LIMIT_RPS", 1.0)
	viper.SetDefault("RATE_LIMIT_BURST", 60)

	viper.SetDefault("MAX_UPLOAD_MB", 20)
	viper.SetDefault("REPORT_TTL", "15m")

	viper.SetDefault("TRACING_ENABLED", false)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("REQUEST_TIMEOUT"),
			RateLimitRPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst: viper.GetInt("RATE_LIMIT_BURST"),
		},
		Upload: UploadConfig{
			MaxBytes:  viper.GetInt64("MAX_UPLOAD_MB") << 20,
			ReportTTL: viper.GetDuration("REPORT_TTL"),
		},
		Tracing: TracingConfig{
			Enabled: viper.GetBool("TRACING_ENABLED"),
		},
	}

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing ones in a slice.
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	if missing := missingFields(AppConfig); len(missing) > 0 {
		log.Fatalf("missing or invalid environment variables: %v\n", missing)
	}
}

func missingFields(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Server.RequestTimeout <= 0 {
		missing = append(missing, "REQUEST_TIMEOUT")
	}
	if cfg.Server.RateLimitRPS <= 0 {
		missing = append(missing, "RATE_LIMIT_RPS")
	}
	if cfg.Server.RateLimitBurst <= 0 {
		missing = append(missing, "RATE_LIMIT_BURST")
	}
	if cfg.Upload.MaxBytes <= 0 {
		missing = append(missing, "MAX_UPLOAD_MB")
	}
	if cfg.Upload.ReportTTL <= 0 {
		missing = append(missing, "REPORT_TTL")
	}

	return missing
}
