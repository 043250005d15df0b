package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                    string
	DatabaseURL             string
	JWTSecret               string
	TokenTTL                time.Duration
	FrontendDir             string
	MigrationsDir           string
	Environment             string
	SeedAdminEmail          string
	SeedAdminPassword       string
	RunMigrations           bool
	RunSeed                 bool
	MaxBodyBytes            int64
	LoginRateLimitPerMinute int
	ReportTimeout           time.Duration
	DefaultReportYear       int
	MetricsEnabled          bool
	AuditRetentionDays      int
	RetentionInterval       time.Duration
}

// Load reads an optional .env file (ENV_FILE, default ".env") and then the
// process environment. Variables already set in the environment win.
func Load() Config {
	_ = godotenv.Load(getEnv("ENV_FILE", ".env"))

	return Config{
		Addr:                    getEnv("APP_ADDR", ":8080"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		TokenTTL:                getEnvDuration("TOKEN_TTL", 12*time.Hour),
		FrontendDir:             getEnv("FRONTEND_DIR", "frontend/dist"),
		MigrationsDir:           getEnv("MIGRATIONS_DIR", "migrations"),
		Environment:             getEnv("APP_ENV", "development"),
		SeedAdminEmail:          getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword:       getEnv("SEED_ADMIN_PASSWORD", ""),
		RunMigrations:           getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:                 getEnvBool("RUN_SEED", true),
		MaxBodyBytes:            int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		LoginRateLimitPerMinute: getEnvInt("LOGIN_RATE_LIMIT_PER_MINUTE", 10),
		ReportTimeout:           getEnvDuration("REPORT_TIMEOUT", 15*time.Second),
		DefaultReportYear:       getEnvInt("DEFAULT_REPORT_YEAR", 0),
		MetricsEnabled:          getEnvBool("METRICS_ENABLED", true),
		AuditRetentionDays:      getEnvInt("AUDIT_RETENTION_DAYS", 365),
		RetentionInterval:       getEnvDuration("RETENTION_INTERVAL", 24*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// ReportYear returns the configured default year, or the year of now.
func (c Config) ReportYear(now time.Time) int {
	if c.DefaultReportYear > 0 {
		return c.DefaultReportYear
	}
	return now.Year()
}

// Validate allows an empty DATABASE_URL outside production: the server then
// starts without a store and authentication reports an unconfigured backend.
// A configured store also requires JWT_SECRET.
func (c Config) Validate() error {
	if c.Environment == "production" {
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required in production")
		}
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
	}
	if strings.TrimSpace(c.DatabaseURL) != "" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required when DATABASE_URL is set")
	}
	if c.RunSeed && strings.TrimSpace(c.SeedAdminEmail) != "" && len(strings.TrimSpace(c.SeedAdminPassword)) < 8 {
		return fmt.Errorf("SEED_ADMIN_PASSWORD must be at least 8 characters when SEED_ADMIN_EMAIL is set")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.LoginRateLimitPerMinute <= 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.DefaultReportYear < 0 {
		return fmt.Errorf("DEFAULT_REPORT_YEAR must not be negative")
	}
	if c.AuditRetentionDays < 0 || c.RetentionInterval < 0 {
		return fmt.Errorf("AUDIT_RETENTION_DAYS and RETENTION_INTERVAL must not be negative")
	}
	return nil
}
