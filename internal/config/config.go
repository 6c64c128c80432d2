package config

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `validate:"required"`
	// GroqAPIKey authenticates against the chat-completion API.
	GroqAPIKey string `validate:"required"`
	// SessionSecret signs the identity cookie.
	SessionSecret string `validate:"required"`
	// BotStorePath is the JSON document holding the persisted bots.
	BotStorePath string `validate:"required"`
	// AIModel is the completion model identifier.
	AIModel string `validate:"required"`
	// AIBaseURL is the OpenAI-compatible API root.
	AIBaseURL string `validate:"required,url"`
	// LogFormat is "text" or "json".
	LogFormat string `validate:"omitempty,oneof=text json"`
}

// New loads configuration from the environment, reading a .env file
// first when one exists.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Addr:          getEnv("ADDR", ":3000"),
		GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		BotStorePath:  getEnv("BOT_STORE_PATH", "data/bots.json"),
		AIModel:       getEnv("AI_MODEL", "llama-3.3-70b-versatile"),
		AIBaseURL:     getEnv("AI_BASE_URL", "https://api.groq.com/openai/v1"),
		LogFormat:     os.Getenv("LOG_FORMAT"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
