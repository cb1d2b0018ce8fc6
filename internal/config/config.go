package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Cache
	RedisURL string // empty selects the in-memory cache

	// Sults CRM
	SultsBaseURL  string
	SultsToken    string
	SultsCacheTTL time.Duration

	// Google Drive
	DriveCredentialsFile string
	DriveFileID          string // default lead spreadsheet
	GoogleAdsFileID      string // Google Ads control spreadsheet
	GoogleAdsSheet       string        // preferred worksheet in the ads workbook
	DriveCacheTTL        time.Duration // downloaded spreadsheets stay cached this long

	// Analysis limits
	MaxRows         int
	SampleThreshold int
	TopN            int
	SummaryTopN     int

	// Background refresh; zero disables the refresher
	RefreshInterval time.Duration

	// OIDC
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/automacaoads?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),

		SultsBaseURL:  getEnv("SULTS_BASE_URL", "https://app.sults.com.br/api"),
		SultsToken:    getEnv("SULTS_TOKEN", ""),
		SultsCacheTTL: getEnvDuration("SULTS_CACHE_TTL", 5*time.Minute),

		DriveCredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", "credentials.json"),
		DriveFileID:          getEnv("DRIVE_FILE_ID", ""),
		GoogleAdsFileID:      getEnv("GOOGLE_ADS_FILE_ID", ""),
		GoogleAdsSheet:       getEnv("GOOGLE_ADS_SHEET", "Controle Google ADS"),
		DriveCacheTTL:        getEnvDuration("DRIVE_CACHE_TTL", 5*time.Minute),

		MaxRows:         getEnvInt("MAX_ROWS", 50000),
		SampleThreshold: getEnvInt("SAMPLE_THRESHOLD", 5000),
		TopN:            getEnvInt("TOP_N", 15),
		SummaryTopN:     getEnvInt("SUMMARY_TOP_N", 6),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 10*time.Minute),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		SessionSecret:    getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:      getEnv("CORS_ORIGINS", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d >= 0 {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
