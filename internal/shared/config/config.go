package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string
	Env         string

	// Dashboard tuning
	TopCustomersLimit   int
	RecentActivityLimit int

	// Cron expression (with seconds) for the daily operational alert digest
	AlertDigestSchedule string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		Port:                os.Getenv("PORT"),
		Env:                 os.Getenv("ENV"),
		TopCustomersLimit:   getInt("DASHBOARD_TOP_CUSTOMERS", 5),
		RecentActivityLimit: getInt("DASHBOARD_RECENT_ACTIVITY", 10),
		AlertDigestSchedule: os.Getenv("ALERT_DIGEST_SCHEDULE"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.AlertDigestSchedule == "" {
		cfg.AlertDigestSchedule = "0 0 6 * * *" // daily at 06:00
	}

	return cfg
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("⚠️ Invalid value for %s: %q, using default %d", key, raw, fallback)
		return fallback
	}
	return n
}
