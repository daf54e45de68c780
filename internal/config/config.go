package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every process-wide setting. It is loaded once in main and
// passed down explicitly; nothing in the codebase reads the environment after
// Load returns.
type Config struct {
	Port string

	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	DBSchemaPath string

	JWTSecret     string
	JWTExpiration time.Duration

	PayRatePerHour      float64
	DefaultCarAllowance float64

	SMTP SMTPConfig

	CORSAllowedOrigins []string

	DefaultManagerUsername string
	DefaultManagerPassword string
}

// SMTPConfig holds the settings for the manager notification emails.
// Notifications are disabled when Host is empty.
type SMTPConfig struct {
	Host         string
	Port         string
	From         string
	Password     string
	ManagerEmail string
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != "" && s.ManagerEmail != ""
}

// ErrMissingJWTSecret is returned when JWT_SECRET is not set; the server
// refuses to start without one.
type ErrMissingJWTSecret struct{}

func (e ErrMissingJWTSecret) Error() string {
	return "JWT_SECRET is not set in the environment"
}

// Load reads an optional .env file and the process environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, ErrMissingJWTSecret{}
	}

	jwtExp, err := parseDuration("JWT_EXPIRATION", 72*time.Hour)
	if err != nil {
		return nil, err
	}
	payRate, err := parseFloat("PAY_RATE_PER_HOUR", 9.00)
	if err != nil {
		return nil, err
	}
	defaultAllowance, err := parseFloat("DEFAULT_CAR_ALLOWANCE", 5.00)
	if err != nil {
		return nil, err
	}
	if payRate <= 0 {
		return nil, fmt.Errorf("PAY_RATE_PER_HOUR must be positive, got %v", payRate)
	}
	if defaultAllowance < 0 {
		return nil, fmt.Errorf("DEFAULT_CAR_ALLOWANCE must not be negative, got %v", defaultAllowance)
	}

	cfg := &Config{
		Port: getenv("PORT", "8080"),

		DBHost:       getenv("DB_HOST", "localhost"),
		DBPort:       getenv("DB_PORT", "5432"),
		DBUser:       getenv("DB_USER", "shifts_user"),
		DBPassword:   getenv("DB_PASSWORD", "shifts_password"),
		DBName:       getenv("DB_NAME", "shifts_db"),
		DBSSLMode:    getenv("DB_SSLMODE", "disable"),
		DBSchemaPath: getenv("DB_SCHEMA_PATH", "db_schema.sql"),

		JWTSecret:     jwtSecret,
		JWTExpiration: jwtExp,

		PayRatePerHour:      payRate,
		DefaultCarAllowance: defaultAllowance,

		SMTP: SMTPConfig{
			Host:         os.Getenv("SMTP_HOST"),
			Port:         getenv("SMTP_PORT", "587"),
			From:         os.Getenv("SMTP_FROM"),
			Password:     os.Getenv("SMTP_PASSWORD"),
			ManagerEmail: os.Getenv("MANAGER_EMAIL"),
		},

		DefaultManagerUsername: getenv("DEFAULT_MANAGER_USERNAME", "admin"),
		DefaultManagerPassword: os.Getenv("DEFAULT_MANAGER_PASSWORD"),
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORSAllowedOrigins = strings.Split(origins, ",")
	} else {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a valid number: %w", key, raw, err)
	}
	return value, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a valid duration: %w", key, raw, err)
	}
	return value, nil
}
