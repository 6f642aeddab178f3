package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds server-level settings read once at startup.
type Config struct {
	Port        string
	Environment string
	FrontendURL string
	// Redis/Upstash Configuration (optional; limiter falls back to in-memory)
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitContactLimit    int
	RateLimitGlobalThreshold int
	// Dispatch budget for the contact email race
	DispatchTimeoutSeconds int
}

// MailConfig holds SMTP relay settings. It is deliberately not cached on
// Config: callers fetch it per dispatch so corrected credentials take effect
// without a restart in environments with hot env reload.
type MailConfig struct {
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	ContactTo     string
	SiteURL       string
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          getEnv("APP_ENV", "development"),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:3000"),
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Contact endpoint admits 5 sends per IP per minute.
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactLimit:    getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// 25s leaves margin inside the 30s server write budget.
		DispatchTimeoutSeconds: getEnvInt("DISPATCH_TIMEOUT_SECONDS", 25),
	}

	return cfg, nil
}

// Mail reads the relay configuration from the environment on every call.
func Mail() MailConfig {
	return MailConfig{
		SMTPHost:      getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", ""),
		ContactTo:     getEnv("CONTACT_EMAIL_TO", ""),
		SiteURL:       getEnv("SITE_URL", "http://localhost:3000"),
	}
}

// IsConfigured reports whether the three values the relay cannot work
// without are all present.
func (m MailConfig) IsConfigured() bool {
	return m.SMTPUsername != "" && m.SMTPPassword != "" && m.ContactTo != ""
}

// IsProduction reports whether the service runs in release mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || os.Getenv("GIN_MODE") == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
