package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all runtime settings for the server.
type Config struct {
	Port          string
	MongoURI      string
	DBName        string
	JWTSecret     string
	TokenExpiry   time.Duration
	RedisAddr     string // optional; empty disables the search cache
	GeminiAPIKey  string
	AllowedOrigin string
}

// LoadConfig reads configuration from a .env file (if present) and the
// environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:        getEnv("DB_NAME", "skillswap"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
	}

	expiry, err := time.ParseDuration(getEnv("TOKEN_EXPIRY", "24h"))
	if err != nil {
		logrus.WithError(err).Warn("Invalid TOKEN_EXPIRY, falling back to 24h")
		expiry = 24 * time.Hour
	}
	cfg.TokenExpiry = expiry

	if cfg.JWTSecret == "" {
		logrus.Warn("JWT_SECRET is not set; tokens will be signed with an empty key")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
