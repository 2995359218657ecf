package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the server.
type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	Timezone     string
	RolloverTime string // HH:MM local time for the daily staging rollover

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	AlertTelegramToken string
	AlertChatID        int64
}

// Load reads configuration from a .env file (if present) and environment
// variables with sane defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:               getenv("PORT", "8080"),
		DatabaseURL:        getenv("DATABASE_URL", "planwheel.db"),
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET")),
		Timezone:           getenv("TIMEZONE", "Asia/Seoul"),
		RolloverTime:       getenv("ROLLOVER_TIME", "00:05"),
		GoogleClientID:     strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID")),
		GoogleClientSecret: strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_SECRET")),
		GoogleRedirectURI:  strings.TrimSpace(os.Getenv("GOOGLE_REDIRECT_URI")),
		AlertTelegramToken: strings.TrimSpace(os.Getenv("ALERT_TELEGRAM_TOKEN")),
	}

	if raw := strings.TrimSpace(os.Getenv("ALERT_CHAT_ID")); raw != "" {
		if _, err := fmt.Sscan(raw, &cfg.AlertChatID); err != nil {
			return cfg, fmt.Errorf("ALERT_CHAT_ID must be numeric: %w", err)
		}
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
