package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	SecretKey          string        // Required: HMAC key for signing access tokens
	Algorithm          string        // Optional: JWT signing algorithm (default: HS256)
	AccessTokenExpires time.Duration // Optional: access token lifetime (default: 30m)

	DatabaseFile string // Optional: path to SQLite database file (default: ./api.db)
	UploadDir    string // Optional: directory for uploaded files (default: ./uploads)

	OwnerUsername string // Optional: bootstrap owner account username
	OwnerEmail    string // Optional: bootstrap owner account email
	OwnerPassword string // Optional: bootstrap owner account password

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

var ErrMissingSecretKey = errors.New("SECRET_KEY must be set")

func LoadConfig() (Config, error) {
	cfg := Config{
		SecretKey: os.Getenv("SECRET_KEY"),
		Algorithm: getEnvOrDefault("ALGORITHM", "HS256"),
		AccessTokenExpires: getEnvDurationOrDefault(
			"ACCESS_TOKEN_EXPIRE_MINUTES",
			30*time.Minute,
		),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "api.db"),
		UploadDir:           getEnvOrDefault("UPLOAD_DIR", "uploads"),
		OwnerUsername:       os.Getenv("OWNER_USERNAME"),
		OwnerEmail:          os.Getenv("OWNER_EMAIL"),
		OwnerPassword:       os.Getenv("OWNER_PASSWORD"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.SecretKey == "" {
		return Config{}, ErrMissingSecretKey
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
