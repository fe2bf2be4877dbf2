package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv         string
	Port           string
	DatabaseURL    string
	JWTSecret      string
	StoragePath    string
	GeoIPDBPath    string
	GoogleClientID string
	GoogleIssuer   string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
	CORSOrigins      []string

	ProfileCacheTTL    time.Duration
	OverlaySettleDelay time.Duration
	OutboxSize         int

	WorkerInterval     time.Duration
	UsageRetentionDays int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		StoragePath:    getEnv("STORAGE_PATH", "./storage"),
		GeoIPDBPath:    os.Getenv("GEOIP_DB_PATH"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleIssuer:   getEnv("GOOGLE_ISSUER", "https://accounts.google.com"),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 30)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		CORSOrigins:      splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),

		ProfileCacheTTL:    time.Second * time.Duration(getEnvInt("PROFILE_CACHE_TTL_SECONDS", 300)),
		OverlaySettleDelay: time.Second * time.Duration(getEnvInt("OVERLAY_SETTLE_SECONDS", 5)),
		OutboxSize:         getEnvInt("OUTBOX_SIZE", 256),

		WorkerInterval:     time.Second * time.Duration(getEnvInt("WORKER_INTERVAL_SECONDS", 3600)),
		UsageRetentionDays: getEnvInt("USAGE_RETENTION_DAYS", 180),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
