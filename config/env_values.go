package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Environment struct {
	// Server configs
	IsDocker          bool
	Port              string
	Environment       string
	CorsAllowedOrigin string
	StaticDir         string

	// Database configs
	MongoURI          string
	MongoDatabaseName string

	// Rate limit configs
	RateLimitRPS   int
	RateLimitBurst int
}

var Env Environment

// LoadEnv loads environment variables from .env file if present
// and validates required variables
func LoadEnv() error {
	// Check if running in Docker
	Env.IsDocker = os.Getenv("IS_DOCKER") == "true"

	// Load .env file only if not running in Docker
	if !Env.IsDocker {
		if err := godotenv.Load(); err != nil {
			fmt.Printf("Warning: .env file not found: %v\n", err)
		}
	}

	// Server configs
	Env.Port = getEnvWithDefault("PORT", "8081")
	Env.Environment = getEnvWithDefault("ENVIRONMENT", "DEVELOPMENT")
	Env.CorsAllowedOrigin = getEnvWithDefault("CORS_ALLOWED_ORIGIN", "http://localhost:5173")
	Env.StaticDir = getEnvWithDefault("STATIC_DIR", "")

	// Database configs. MONGODECK_MONGODB_URI is optional: when set the
	// server keeps retrying the connection on startup until it succeeds,
	// otherwise a connection must be made through the /api/connect endpoint.
	Env.MongoURI = getEnvWithDefault("MONGODECK_MONGODB_URI", "")
	Env.MongoDatabaseName = getEnvWithDefault("MONGODECK_MONGODB_NAME", "")

	// Rate limit configs
	Env.RateLimitRPS = getIntEnvWithDefault("RATE_LIMIT_RPS", 5)
	Env.RateLimitBurst = getIntEnvWithDefault("RATE_LIMIT_BURST", 10)

	return validateConfig()
}

// Helper functions to get environment variables with defaults and validation
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvWithDefault(key string, defaultValue int) int {
	strValue := os.Getenv(key)
	if strValue == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(strValue)
	if err != nil {
		fmt.Printf("Warning: Invalid value for %s, using default: %d\n", key, defaultValue)
		return defaultValue
	}
	return value
}

func validateConfig() error {
	if Env.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got: %d", Env.RateLimitRPS)
	}

	if Env.RateLimitBurst < Env.RateLimitRPS {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least RATE_LIMIT_RPS, got: %d", Env.RateLimitBurst)
	}

	return nil
}
