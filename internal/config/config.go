// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server settings.
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Database settings.
	DatabasePath string // Path to the SQLite database file.

	// JWT settings.
	JWTPrivateKeyPath string // Path to Ed25519 private key PEM file.
	JWTPublicKeyPath  string // Path to Ed25519 public key PEM file.
	JWTExpiration     time.Duration

	// Validation provider settings.
	ValidationProvider string // "auto", "openai", or "stub"
	OpenAIAPIKey       string
	OpenAIModel        string
	OpenAIBaseURL      string
	ValidationTimeout  time.Duration

	// OTEL settings.
	OTELEndpoint string
	OTELInsecure bool // Use plain HTTP for the OTLP exporter.
	ServiceName  string

	// Rate limiting.
	RateLimitRPS   float64 // Sustained requests per second per client IP.
	RateLimitBurst int

	// Operational settings.
	LogLevel            string
	CORSAllowedOrigins  []string
	MaxRequestBodyBytes int64 // Maximum request body size in bytes.
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:                envInt("INNOV8_PORT", 8080),
		ReadTimeout:         envDuration("INNOV8_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:        envDuration("INNOV8_WRITE_TIMEOUT", 30*time.Second),
		DatabasePath:        envStr("INNOV8_DATABASE_PATH", "./innov8.db"),
		JWTPrivateKeyPath:   envStr("INNOV8_JWT_PRIVATE_KEY", ""),
		JWTPublicKeyPath:    envStr("INNOV8_JWT_PUBLIC_KEY", ""),
		JWTExpiration:       envDuration("INNOV8_JWT_EXPIRATION", 168*time.Hour), // 7 days
		ValidationProvider:  envStr("INNOV8_VALIDATION_PROVIDER", "auto"),
		OpenAIAPIKey:        envStr("OPENAI_API_KEY", ""),
		OpenAIModel:         envStr("INNOV8_OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:       envStr("INNOV8_OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ValidationTimeout:   envDuration("INNOV8_VALIDATION_TIMEOUT", 30*time.Second),
		OTELEndpoint:        envStr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELInsecure:        envBool("INNOV8_OTEL_INSECURE", true),
		ServiceName:         envStr("OTEL_SERVICE_NAME", "innov8"),
		RateLimitRPS:        envFloat("INNOV8_RATE_LIMIT_RPS", 10),
		RateLimitBurst:      envInt("INNOV8_RATE_LIMIT_BURST", 30),
		LogLevel:            envStr("INNOV8_LOG_LEVEL", "info"),
		CORSAllowedOrigins:  envList("INNOV8_CORS_ALLOWED_ORIGINS", []string{"*"}),
		MaxRequestBodyBytes: int64(envInt("INNOV8_MAX_REQUEST_BODY_BYTES", 10*1024*1024)), // 10 MB default
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present.
func (c Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("config: INNOV8_DATABASE_PATH is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: INNOV8_PORT must be in 1-65535")
	}
	switch c.ValidationProvider {
	case "auto", "openai", "stub":
	default:
		return fmt.Errorf("config: INNOV8_VALIDATION_PROVIDER must be auto, openai, or stub")
	}
	if c.ValidationProvider == "openai" && c.OpenAIAPIKey == "" {
		return fmt.Errorf("config: OPENAI_API_KEY is required when INNOV8_VALIDATION_PROVIDER=openai")
	}
	if c.MaxRequestBodyBytes <= 0 {
		return fmt.Errorf("config: INNOV8_MAX_REQUEST_BODY_BYTES must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("config: rate limit settings must be positive")
	}
	return nil
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func envFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func envList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
