package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DatabaseURL  string
	AllowOrigins []string

	SessionStore       string
	SessionTTL         time.Duration
	SessionMaxLifetime time.Duration

	ResetTokenTTL time.Duration
	ResetBaseURL  string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	DiscoveryCommand []string
	DiscoveryDir     string
	DiscoveryFile    string
	DiscoveryTimeout time.Duration

	LogCollectorAddr string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	return Config{
		Port:         getenv("PORT", "3000"),
		DatabaseURL:  must("DATABASE_URL"),
		AllowOrigins: splitAndTrim(getenv("ALLOW_ORIGINS", "http://localhost:5173")),

		SessionStore:       getenv("SESSION_STORE", "postgres"),
		SessionTTL:         getDuration("SESSION_TTL", time.Hour),
		SessionMaxLifetime: getDuration("SESSION_MAX_LIFETIME", 12*time.Hour),

		ResetTokenTTL: getDuration("RESET_TOKEN_TTL", time.Hour),
		ResetBaseURL:  getenv("RESET_BASE_URL", "http://localhost:3000"),

		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPPort:     getenv("SMTP_PORT", ""),
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		SMTPFrom:     getenv("SMTP_FROM", ""),

		DiscoveryCommand: strings.Fields(getenv("DISCOVERY_COMMAND", "python3 main.py")),
		DiscoveryDir:     getenv("DISCOVERY_DIR", "deviceDiscovery"),
		DiscoveryFile:    getenv("DISCOVERY_FILE", "deviceDiscovery/discovery.json"),
		DiscoveryTimeout: getDuration("DISCOVERY_TIMEOUT", 5*time.Minute),

		LogCollectorAddr: getenv("LOG_COLLECTOR_ADDR", ""),
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getDuration(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: invalid duration for %s: %v", k, err)
		return d
	}
	return parsed
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
