package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	RedisURL string

	JWTSecret     string
	TokenTTL      time.Duration
	AuthDelay     time.Duration
	LoginRateWait time.Duration

	RenewalDebounce     time.Duration
	RenewalScanInterval time.Duration

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		RedisURL: os.Getenv("REDIS_URL"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "asset_manager_documents"),
	}

	// Parsing durations
	var err error
	cfg.TokenTTL, err = parseDuration(getEnv("TOKEN_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	cfg.AuthDelay, err = parseDuration(getEnv("AUTH_DELAY", "800ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_DELAY: %w", err)
	}
	cfg.LoginRateWait, err = parseDuration(getEnv("LOGIN_RATE_WAIT", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_WAIT: %w", err)
	}
	cfg.RenewalDebounce, err = parseDuration(getEnv("RENEWAL_DEBOUNCE", "500ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid RENEWAL_DEBOUNCE: %w", err)
	}
	cfg.RenewalScanInterval, err = parseDuration(getEnv("RENEWAL_SCAN_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RENEWAL_SCAN_INTERVAL: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
