// Package config loads the application configuration from the process
// environment, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the dashboard.
type Config struct {
	Server   ServerConfig
	Gemini   GeminiConfig
	CORS     CORSConfig
	LogLevel string
}

// ServerConfig holds the HTTP listener configuration.
type ServerConfig struct {
	Host string
	Port string
	Addr string // combined host:port
}

// GeminiConfig holds the single API credential used for every outbound
// generative call.
type GeminiConfig struct {
	APIKey string
}

// CORSConfig holds the origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and a .env file
// when one is present.
func Load() (*Config, error) {
	// A missing .env file is fine, the environment alone is enough.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("FINVEST_HOST", "localhost"),
			Port: getEnv("FINVEST_PORT", "5001"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(getEnv("FINVEST_CORS_ORIGINS", "http://localhost:3000"), ","),
		},
		LogLevel: getEnv("FINVEST_LOG_LEVEL", "info"),
	}
	cfg.Server.Addr = fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
