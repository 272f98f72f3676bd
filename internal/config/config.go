package config

import (
	"os"
	"strconv"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	AI       AIConfig
	OCR      OCRConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Host    string
	Port    string
	GinMode string
}

// DatabaseConfig holds the optional PostgreSQL connection settings. When URL
// is empty the service runs on the in-memory store.
type DatabaseConfig struct {
	URL string
}

// AIConfig holds generative-model settings. A missing API key is not a
// startup failure: /api/solutions reports it per request.
type AIConfig struct {
	GeminiKey   string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// OCRConfig holds text-recognition settings
type OCRConfig struct {
	Language       string
	MaxUploadBytes int64
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    envOr("HOST", "127.0.0.1"),
			Port:    envOr("PORT", "5000"),
			GinMode: os.Getenv("GIN_MODE"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		AI: AIConfig{
			GeminiKey:   os.Getenv("GEMINI_API_KEY"),
			Model:       envOr("GEMINI_MODEL", "gemini-1.5-flash"),
			MaxTokens:   envInt("LLM_MAX_TOKENS", 8192),
			Temperature: envFloat("LLM_TEMPERATURE", 0.4),
			Timeout:     time.Duration(envInt("LLM_TIMEOUT_MS", 120000)) * time.Millisecond,
		},
		OCR: OCRConfig{
			Language:       envOr("OCR_LANGUAGE", "eng"),
			MaxUploadBytes: int64(envInt("MAX_UPLOAD_BYTES", 10*1024*1024)),
		},
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
