package config

import (
	"denuncias/database"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Auth     AuthConfig
	Mail     MailConfig
	Upload   UploadConfig
	Log      LogConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver       string // DB_DRIVER: mysql | postgres | sqlite3
	DatabaseURL  string // DATABASE_URL - takes precedence over individual vars
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SQLitePath   string
	MaxOpenConns int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port        string
	Host        string
	FrontendURL string // CORS origin
}

// AuthConfig holds token settings
type AuthConfig struct {
	JWTSecret    string
	ExpiresHours int
}

// MailConfig holds SMTP settings. Mail is disabled when Enabled is false or Host is empty.
type MailConfig struct {
	Enabled   bool
	Host      string
	Port      int
	User      string
	Password  string
	From      string
	QueueSize int
}

// UploadConfig holds file store settings
type UploadConfig struct {
	BasePath string
	MaxBytes int64
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string
	Env   string
}

const defaultJWTSecret = "dev-secret-change-in-production"

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "mysql"),
			DatabaseURL:  os.Getenv("DATABASE_URL"),
			Host:         getEnv("DB_HOST", "127.0.0.1"),
			Port:         os.Getenv("DB_PORT"),
			User:         os.Getenv("DB_USER"),
			Password:     os.Getenv("DB_PASSWORD"),
			DBName:       getEnv("DB_NAME", "denuncias"),
			SQLitePath:   getEnv("SQLITE_PATH", "denuncias.db"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 20),
		},
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnv("PORT", getEnv("SERVER_PORT", "3000")),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", defaultJWTSecret),
			ExpiresHours: getEnvInt("JWT_EXPIRES_HOURS", 1),
		},
		Mail: MailConfig{
			Enabled:   getEnvBool("MAIL_ENABLED", true),
			Host:      os.Getenv("SMTP_HOST"),
			Port:      getEnvInt("SMTP_PORT", 587),
			User:      os.Getenv("SMTP_USER"),
			Password:  os.Getenv("SMTP_PASSWORD"),
			From:      getEnv("MAIL_FROM", "no-reply@municipalidad.cl"),
			QueueSize: getEnvInt("MAIL_QUEUE_SIZE", 100),
		},
		Upload: UploadConfig{
			BasePath: getEnv("UPLOAD_BASE_PATH", "uploads"),
			MaxBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", 5*1024*1024)),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			Env:   getEnv("APP_ENV", "development"),
		},
	}
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Log.Env, "production")
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if _, err := database.ParseDialect(c.Database.Driver); err != nil {
		return err
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.IsProduction() && c.Auth.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.Auth.ExpiresHours <= 0 {
		return fmt.Errorf("JWT_EXPIRES_HOURS must be positive, got %d", c.Auth.ExpiresHours)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.Upload.MaxBytes)
	}
	return nil
}

// DSN builds the driver-specific data source name. DATABASE_URL wins when set.
func (d DatabaseConfig) DSN() (database.Dialect, string, error) {
	dialect, err := database.ParseDialect(d.Driver)
	if err != nil {
		return "", "", err
	}
	if d.DatabaseURL != "" {
		return dialect, d.DatabaseURL, nil
	}
	switch dialect {
	case database.Postgres:
		port := d.Port
		if port == "" {
			port = "5432"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(d.User, d.Password),
			Host:     d.Host + ":" + port,
			Path:     "/" + d.DBName,
			RawQuery: "sslmode=disable",
		}
		return dialect, u.String(), nil
	case database.SQLite:
		return dialect, "file:" + d.SQLitePath + "?_foreign_keys=on", nil
	default:
		port := d.Port
		if port == "" {
			port = "3306"
		}
		// UTC for consistent timestamps
		return dialect, fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			d.User, d.Password, d.Host, port, d.DBName), nil
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
