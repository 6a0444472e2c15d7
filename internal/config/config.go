package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/deduction"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Storage   StorageConfig
	Import    ImportConfig
	Deduction deduction.Policy
	Report    ReportConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
	// QueryTimeout bounds roster lookups; zero disables it.
	QueryTimeout time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string

	// Retention is how long uploaded workbooks are kept; zero keeps them.
	Retention     time.Duration
	PurgeInterval time.Duration
}

// ImportConfig bounds uploaded time-clock exports.
type ImportConfig struct {
	MaxUploadSize int64
}

type ReportConfig struct {
	Organization string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	queryTimeout, err := time.ParseDuration(getEnv("DB_QUERY_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_QUERY_TIMEOUT: %w", err)
	}
	config.Database.QueryTimeout = queryTimeout

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	retention, err := time.ParseDuration(getEnv("STORAGE_RETENTION", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_RETENTION: %w", err)
	}
	purgeInterval, err := time.ParseDuration(getEnv("STORAGE_PURGE_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_PURGE_INTERVAL: %w", err)
	}

	config.Storage = StorageConfig{
		Type:          getEnv("STORAGE_TYPE", "local"),
		BasePath:      getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:       getEnv("STORAGE_BASE_URL", "http://localhost:8080/api/v1/biometric/uploads"),
		Retention:     retention,
		PurgeInterval: purgeInterval,
	}

	maxUploadMB, err := strconv.Atoi(getEnv("IMPORT_MAX_UPLOAD_MB", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid IMPORT_MAX_UPLOAD_MB: %w", err)
	}
	config.Import = ImportConfig{MaxUploadSize: int64(maxUploadMB) << 20}

	policy, err := loadDeductionPolicy()
	if err != nil {
		return nil, err
	}
	config.Deduction = policy

	config.Report = ReportConfig{
		Organization: getEnv("REPORT_ORGANIZATION", "Attendance Hub"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadDeductionPolicy overrides the stock policy with any DEDUCTION_* and
// REPORT_CURRENCY values that are set.
func loadDeductionPolicy() (deduction.Policy, error) {
	policy := deduction.DefaultPolicy()

	rates := []struct {
		key    string
		target *decimal.Decimal
	}{
		{"DEDUCTION_TARDY_MINUTE_RATE", &policy.TardyMinuteRate},
		{"DEDUCTION_ABSENCE_DAY_RATE", &policy.AbsenceDayRate},
		{"DEDUCTION_EARLY_LEAVE_MINUTE_RATE", &policy.EarlyLeaveMinuteRate},
		{"DEDUCTION_MAX_PERCENT", &policy.MaxDeductionPercent},
	}
	for _, rate := range rates {
		value := getEnv(rate.key, "")
		if value == "" {
			continue
		}
		d, err := decimal.NewFromString(value)
		if err != nil {
			return policy, fmt.Errorf("invalid %s: %w", rate.key, err)
		}
		*rate.target = d
	}

	if value := getEnv("DEDUCTION_TOLERANCE_MINUTES", ""); value != "" {
		tolerance, err := strconv.Atoi(value)
		if err != nil {
			return policy, fmt.Errorf("invalid DEDUCTION_TOLERANCE_MINUTES: %w", err)
		}
		policy.ToleranceMinutesPerOccurrence = tolerance
	}

	if value := getEnv("DEDUCTION_ENFORCE_CAP", ""); value != "" {
		enforce, err := strconv.ParseBool(value)
		if err != nil {
			return policy, fmt.Errorf("invalid DEDUCTION_ENFORCE_CAP: %w", err)
		}
		policy.EnforceCap = enforce
	}

	policy.Currency = getEnv("REPORT_CURRENCY", policy.Currency)
	return policy, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return errors.New("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if c.Database.QueryTimeout < 0 {
		return errors.New("DB_QUERY_TIMEOUT must not be negative")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Storage.Type != "local" {
		return fmt.Errorf("unsupported STORAGE_TYPE: %s", c.Storage.Type)
	}
	if c.Storage.Retention < 0 {
		return errors.New("STORAGE_RETENTION must not be negative")
	}
	if c.Storage.Retention > 0 && c.Storage.PurgeInterval <= 0 {
		return errors.New("STORAGE_PURGE_INTERVAL must be positive")
	}
	if c.Import.MaxUploadSize <= 0 {
		return errors.New("IMPORT_MAX_UPLOAD_MB must be positive")
	}

	p := c.Deduction
	if p.TardyMinuteRate.IsNegative() || p.AbsenceDayRate.IsNegative() || p.EarlyLeaveMinuteRate.IsNegative() {
		return errors.New("deduction rates must not be negative")
	}
	if p.ToleranceMinutesPerOccurrence < 0 {
		return errors.New("DEDUCTION_TOLERANCE_MINUTES must not be negative")
	}
	if p.MaxDeductionPercent.IsNegative() || p.MaxDeductionPercent.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("DEDUCTION_MAX_PERCENT must be between 0 and 100")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
