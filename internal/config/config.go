package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Sentiment classifier capability
	SentimentURL     string  `env:"SENTIMENT_URL" envDefault:""`
	SentimentTimeout int     `env:"SENTIMENT_TIMEOUT" envDefault:"5"` // seconds
	OpenAIAPIKey     string  `env:"OPENAI_API_KEY" envDefault:""`
	OpenAIModel      string  `env:"OPENAI_MODEL" envDefault:""`
	RequestsPerSec   int     `env:"REQUESTS_PER_SEC" envDefault:"5"`
	CalendarBlend    float64 `env:"CALENDAR_BLEND_WEIGHT" envDefault:"0.3"`

	// Watcher service
	WatchDir     string `env:"WATCH_DIR" envDefault:"."`
	PollInterval int    `env:"POLL_INTERVAL" envDefault:"5"` // seconds

	// Decision persistence (optional: disabled when DB_HOST is empty)
	DBHost     string `env:"DB_HOST" envDefault:""`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:""`
	DBPassword string `env:"DB_PASSWORD" envDefault:""`
	DBName     string `env:"DB_NAME" envDefault:""`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// CSV audit export (optional: disabled when empty)
	CSVExportPath string `env:"CSV_EXPORT_PATH" envDefault:""`

	// Telegram notification (optional: disabled when token is empty)
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN" envDefault:""`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID" envDefault:"0"`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.SentimentURL = os.Getenv("SENTIMENT_URL")
	cfg.SentimentTimeout = getEnvIntWithDefault("SENTIMENT_TIMEOUT", 5)
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIModel = os.Getenv("OPENAI_MODEL")
	cfg.RequestsPerSec = getEnvIntWithDefault("REQUESTS_PER_SEC", 5)
	cfg.CalendarBlend = getEnvFloatWithDefault("CALENDAR_BLEND_WEIGHT", 0.3)
	cfg.WatchDir = getEnvWithDefault("WATCH_DIR", ".")
	cfg.PollInterval = getEnvIntWithDefault("POLL_INTERVAL", 5)
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = getEnvWithDefault("DB_PORT", "5432")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnvWithDefault("DB_SSLMODE", "disable")
	cfg.CSVExportPath = os.Getenv("CSV_EXPORT_PATH")
	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0)

	return &cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
