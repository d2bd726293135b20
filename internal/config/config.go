package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string

	// OpenAI backend
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	ChatModel       string
	TranscribeModel string
	HTTPTimeout     time.Duration

	// Upload limits
	MaxFileSize int64
}

func Load() (*Config, error) {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ChatModel:       getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		TranscribeModel: getEnv("OPENAI_TRANSCRIBE_MODEL", "gpt-4o-mini-transcribe"),
		HTTPTimeout:     getDurationEnv("OPENAI_HTTP_TIMEOUT", 60*time.Second),
		MaxFileSize:     getInt64Env("MAX_FILE_SIZE", 25*1024*1024),
	}

	// A missing API key is not fatal here: each request reports it as a
	// configuration error before any backend call is attempted.
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
