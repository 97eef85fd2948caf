package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the process-wide configuration, read once at startup from the
// environment (optionally seeded from a .env file).
type Config struct {
	Environment string
	Port        string
	LogLevel    slog.Level

	MongoURI string
	MongoDB  string

	// Signing secret for session tokens.
	JWTSecret string

	Cloudinary CloudinaryConfig
	SMTP       SMTPConfig

	// Public web-app base URL used to build verification/reset links.
	ClientDomain string

	// Allowed cross-origin caller.
	CORSOrigin string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

func LoadConfig() (*Config, error) {
	// A missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg := &Config{
		Environment:  getEnv("ENVIRONMENT", "development"),
		Port:         getEnv("PORT", "8000"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		MongoURI:     os.Getenv("MONGO_URI"),
		MongoDB:      getEnv("MONGO_DB", "eduvia"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		ClientDomain: os.Getenv("CLIENT_DOMAIN"),
		CORSOrigin:   getEnv("CORS_ORIGIN", "*"),
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			Sender:   os.Getenv("SMTP_SENDER"),
		},
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.ClientDomain == "" {
		return nil, fmt.Errorf("CLIENT_DOMAIN is required")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
