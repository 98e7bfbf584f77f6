package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Required
	TelegramAppID    int
	TelegramAppHash  string
	TelegramBotToken string
	GeminiAPIKey     string

	// Optional with defaults
	GeminiModel     string
	Timezone        string
	Temperature     float64
	MaxOutputTokens int
	DBPath          string
	SessionPath     string

	// Optional integrations
	GoogleCredentialsFile string
	GoogleTokenFile       string
	ResendAPIKey          string
	NotifyEmail           string
	EmailFrom             string
}

func LoadFromEnv() *Config {
	cfg := &Config{
		// Required
		TelegramAppID:    getEnvAsIntOrDefault("TELEGRAM_APP_ID", 0),
		TelegramAppHash:  os.Getenv("TELEGRAM_APP_HASH"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),

		// Optional with defaults
		GeminiModel:     getEnvOrDefault("GEMCAL_MODEL", "gemini-1.5-flash-latest"),
		Timezone:        getEnvOrDefault("GEMCAL_TIMEZONE", "Asia/Jerusalem"),
		Temperature:     getEnvAsFloatOrDefault("GEMCAL_TEMPERATURE", 0.2),
		MaxOutputTokens: getEnvAsIntOrDefault("GEMCAL_MAX_TOKENS", 2048),
		DBPath:          getEnvOrDefault("GEMCAL_DB_PATH", "./gemcal.db"),
		SessionPath:     getEnvOrDefault("GEMCAL_SESSION_PATH", "./telegram.session"),

		// Optional integrations
		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "./credentials.json"),
		GoogleTokenFile:       getEnvOrDefault("GOOGLE_TOKEN_FILE", "./token.json"),
		ResendAPIKey:          os.Getenv("RESEND_API_KEY"),
		NotifyEmail:           os.Getenv("GEMCAL_NOTIFY_EMAIL"),
		EmailFrom:             getEnvOrDefault("GEMCAL_EMAIL_FROM", "gemcal@localhost"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
