package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	Stripe    StripeConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	OTEL      OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
	// AdminToken guards back-office routes; empty disables them.
	AdminToken string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

// SMTPConfig holds outbound mail configuration.
// BusinessInbox receives a copy of every new lead.
type SMTPConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	FromAddress   string
	FromName      string
	BusinessInbox string
}

// StripeConfig holds checkout configuration
type StripeConfig struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
	Currency   string
}

// RateLimitConfig bounds public lead submissions per client IP
type RateLimitConfig struct {
	LeadSubmissions int
	Window          time.Duration
	DedupWindow     time.Duration
}

// LogConfig holds logger configuration
type LogConfig struct {
	Env   string
	Level string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
			AdminToken:     getEnv("ADMIN_API_TOKEN", ""),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "ultraclean"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},
		SMTP: SMTPConfig{
			Host:          getEnv("SMTP_HOST", "localhost"),
			Port:          getEnvAsInt("SMTP_PORT", 587),
			Username:      getEnv("SMTP_USERNAME", ""),
			Password:      getEnv("SMTP_PASSWORD", ""),
			FromAddress:   getEnv("SMTP_FROM_ADDRESS", "hello@ultraclean.example"),
			FromName:      getEnv("SMTP_FROM_NAME", "UltraClean"),
			BusinessInbox: getEnv("BUSINESS_INBOX", "bookings@ultraclean.example"),
		},
		Stripe: StripeConfig{
			SecretKey:  getEnv("STRIPE_SECRET_KEY", ""),
			SuccessURL: getEnv("STRIPE_SUCCESS_URL", "http://localhost:3000/courses/success?session_id={CHECKOUT_SESSION_ID}"),
			CancelURL:  getEnv("STRIPE_CANCEL_URL", "http://localhost:3000/courses/cancelled"),
			Currency:   strings.ToLower(getEnv("STRIPE_CURRENCY", "usd")),
		},
		RateLimit: RateLimitConfig{
			LeadSubmissions: getEnvAsInt("LEAD_RATE_LIMIT", 5),
			Window:          getEnvAsDuration("LEAD_RATE_WINDOW", time.Hour),
			DedupWindow:     getEnvAsDuration("LEAD_DEDUP_WINDOW", 10*time.Minute),
		},
		Log: LogConfig{
			Env:   getEnv("APP_ENV", "development"),
			Level: getEnv("LOG_LEVEL", "info"),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "ultraclean-backend"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT out of range: %d", c.Server.Port)
	}
	if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
		return fmt.Errorf("SMTP_PORT out of range: %d", c.SMTP.Port)
	}
	if c.RateLimit.LeadSubmissions < 1 {
		return fmt.Errorf("LEAD_RATE_LIMIT must be positive, got %d", c.RateLimit.LeadSubmissions)
	}
	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CheckoutEnabled reports whether a Stripe key was supplied
func (c *StripeConfig) CheckoutEnabled() bool {
	return c.SecretKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
