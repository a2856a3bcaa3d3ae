package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface, shared by
// the API server and the dashboard binary.
type Config struct {
	Server    ServerConfig
	Dashboard DashboardConfig
	MongoDB   MongoDBConfig
	Auth      AuthConfig
	API       APIClientConfig
	Reporting ReportingConfig
	Sheets    SheetsConfig
}

// ServerConfig holds options for the inventory API HTTP server.
type ServerConfig struct {
	Port string
}

// DashboardConfig holds options for the dashboard HTTP server.
type DashboardConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig holds JWT signing settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// APIClientConfig configures the dashboard's client for the inventory API.
type APIClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ReportingConfig holds scheduler-related settings for the snapshot job.
type ReportingConfig struct {
	CronSchedule string
}

// SheetsConfig contains configuration for the optional Google Sheets export.
// The export is disabled when CredentialsPath is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	SnapshotRange   string
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

	tokenTTL, err := getenvDuration("AUTH_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	apiTimeout, err := getenvDuration("API_CLIENT_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Dashboard: DashboardConfig{
			Port: getenvWithDefault("DASHBOARD_PORT", "8081"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "inventory_system"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET_KEY"),
			TokenTTL:  tokenTTL,
		},
		API: APIClientConfig{
			BaseURL: getenvWithDefault("INVENTORY_API_URL", "http://localhost:8080"),
			Timeout: apiTimeout,
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 20 * * *"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_REPORT_ID"),
			SnapshotRange:   getenvWithDefault("GOOGLE_SHEET_SNAPSHOT_RANGE", "Snapshots!A:E"),
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

	if c.Dashboard.Port == "" {
		return errors.New("DASHBOARD_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}

	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET_KEY must be provided")
	}

	if c.Auth.TokenTTL <= 0 {
		return errors.New("AUTH_TOKEN_TTL must be positive")
	}

	if c.API.BaseURL == "" {
		return errors.New("INVENTORY_API_URL must not be empty")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}

	// Sheets export is optional; when enabled the spreadsheet id is required.
	if c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_REPORT_ID must be provided when sheets credentials are set")
	}

	return nil
}

// SheetsEnabled reports whether the Google Sheets snapshot export is
// configured.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}
