package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Attendance AttendanceConfig
}

type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	AccessExpiration  string
	RefreshExpiration string
}

// AttendanceConfig holds the classification thresholds and the shift
// label used for employees without an assignment. Durations are minutes.
type AttendanceConfig struct {
	DefaultShiftLabel string
	Timezone          string
	LateMarkMinutes   int
	HalfDayMinMinutes int
	HalfDayMaxMinutes int
}

func Load() (*Config, error) {
	// Missing .env is fine in production; env vars are set directly there.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "workforce"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
	}

	lateMark, err := strconv.Atoi(getEnv("ATTENDANCE_LATE_MARK_MINUTES", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_LATE_MARK_MINUTES: %w", err)
	}
	halfDayMin, err := strconv.Atoi(getEnv("ATTENDANCE_HALF_DAY_MIN_MINUTES", "240"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_HALF_DAY_MIN_MINUTES: %w", err)
	}
	halfDayMax, err := strconv.Atoi(getEnv("ATTENDANCE_HALF_DAY_MAX_MINUTES", "270"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_HALF_DAY_MAX_MINUTES: %w", err)
	}

	config.Attendance = AttendanceConfig{
		DefaultShiftLabel: getEnv("DEFAULT_SHIFT_LABEL", "General"),
		Timezone:          getEnv("COMPANY_TIMEZONE", "Asia/Kolkata"),
		LateMarkMinutes:   lateMark,
		HalfDayMinMinutes: halfDayMin,
		HalfDayMaxMinutes: halfDayMax,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration. A bad shift or threshold setup
// corrupts every downstream classification, so it is rejected at
// startup rather than per request.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if strings.TrimSpace(c.Attendance.DefaultShiftLabel) == "" {
		return fmt.Errorf("DEFAULT_SHIFT_LABEL is required")
	}
	if c.Attendance.LateMarkMinutes < 0 {
		return fmt.Errorf("ATTENDANCE_LATE_MARK_MINUTES must not be negative")
	}
	if c.Attendance.HalfDayMinMinutes <= 0 {
		return fmt.Errorf("ATTENDANCE_HALF_DAY_MIN_MINUTES must be positive")
	}
	if c.Attendance.HalfDayMaxMinutes < c.Attendance.HalfDayMinMinutes {
		return fmt.Errorf("ATTENDANCE_HALF_DAY_MAX_MINUTES must not be below ATTENDANCE_HALF_DAY_MIN_MINUTES")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
