package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Public  PublicConfig
	Notify  NotifyConfig
	Ledger  LedgerConfig
	Jobs    JobsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port  string
	Debug bool
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// PublicConfig describes the externally reachable base URL used when
// rendering shareable boat links and QR codes.
type PublicConfig struct {
	BaseURL string
}

// NotifyConfig configures the outbound ops webhook. An empty URL disables
// notifications entirely.
type NotifyConfig struct {
	WebhookURL string
	Timeout    time.Duration
}

// LedgerConfig configures the Google Sheets bookkeeping export. Leaving both
// fields empty disables the export job.
type LedgerConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// JobsConfig holds scheduler-related settings.
type JobsConfig struct {
	ExportSchedule  string
	OverdueSchedule string
	Timezone        string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	notifyTimeout, err := time.ParseDuration(getenvWithDefault("NOTIFY_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFY_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:  getenvWithDefault("APP_PORT", "8080"),
			Debug: strings.EqualFold(os.Getenv("APP_DEBUG"), "true"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "slipway"),
		},
		Public: PublicConfig{
			BaseURL: getenvWithDefault("PUBLIC_BASE_URL", "http://localhost:8080"),
		},
		Notify: NotifyConfig{
			WebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
			Timeout:    notifyTimeout,
		},
		Ledger: LedgerConfig{
			CredentialsPath: os.Getenv("LEDGER_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("LEDGER_SPREADSHEET_ID"),
		},
		Jobs: JobsConfig{
			ExportSchedule:  getenvWithDefault("LEDGER_EXPORT_SCHEDULE", "0 6 * * *"),
			OverdueSchedule: getenvWithDefault("OVERDUE_SCAN_SCHEDULE", "0 7 * * *"),
			Timezone:        getenvWithDefault("TIMEZONE", "Europe/Stockholm"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Public.BaseURL == "" {
		return errors.New("PUBLIC_BASE_URL must not be empty")
	}

	// The ledger export is optional, but a half-configured one is a mistake.
	if (c.Ledger.CredentialsPath == "") != (c.Ledger.SpreadsheetID == "") {
		return errors.New("LEDGER_CREDENTIALS_PATH and LEDGER_SPREADSHEET_ID must be set together")
	}

	if c.Jobs.ExportSchedule == "" {
		return errors.New("LEDGER_EXPORT_SCHEDULE must be provided")
	}

	if c.Jobs.OverdueSchedule == "" {
		return errors.New("OVERDUE_SCAN_SCHEDULE must be provided")
	}

	if c.Jobs.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

// LedgerEnabled reports whether the bookkeeping export is configured.
func (c *Config) LedgerEnabled() bool {
	return c.Ledger.CredentialsPath != "" && c.Ledger.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
