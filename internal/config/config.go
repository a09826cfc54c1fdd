package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort        string
	BaseURL           string
	FrontendURL       string
	DatabaseURL       string
	RelayEndpointURL  string
	RedisURL          string
	GlobalRateLimit   string
	RateLimitWindow   time.Duration
	ContactRateMax    int
	NewsletterRateMax int
	EnableHSTS        bool
	ServerDebugMode   bool
	OTELEnabled       bool
	OTELEndpoint      string
}

// Load loads configuration from environment variables.
// DATABASE_URL and RELAY_ENDPOINT_URL are intentionally optional: their absence
// degrades the corresponding endpoint to a configuration error at request time
// rather than preventing startup.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RelayEndpointURL:  getEnv("RELAY_ENDPOINT_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		GlobalRateLimit:   getEnv("GLOBAL_RATE_LIMIT", "100-M"),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		ContactRateMax:    getEnvInt("CONTACT_RATE_LIMIT_MAX", 3),
		NewsletterRateMax: getEnvInt("NEWSLETTER_RATE_LIMIT_MAX", 5),
		EnableHSTS:        getEnvBool("ENABLE_HSTS", false),
		ServerDebugMode:   getEnvBool("SERVER_DEBUG_MODE", false),
		OTELEnabled:       getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:      getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
