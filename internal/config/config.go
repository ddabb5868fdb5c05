package config

import (
	"log/slog"
	"os"
	"strconv"
)

type Config struct {
	Port           string
	DBPath         string
	UploadDir      string
	MaxUploadSize  int64
	BotToken       string
	AdminUserID    string
	SessionSecret  string
	TelegramAPIURL string
	KBZPayNumber   string // payment account shown to customers at checkout
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "./telegram_shop.db"),
		UploadDir:      getEnv("UPLOAD_DIR", "static/uploads"),
		MaxUploadSize:  getEnvInt64("MAX_UPLOAD_SIZE", 16<<20), // 16MB max file size
		BotToken:       getEnv("BOT_TOKEN", ""),
		AdminUserID:    getEnv("ADMIN_USER_ID", ""),
		SessionSecret:  getEnv("SECRET_KEY", ""),
		TelegramAPIURL: getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		KBZPayNumber:   getEnv("KBZ_PAY_NUMBER", "09440823954"),
	}

	if cfg.BotToken == "" {
		slog.Warn("BOT_TOKEN environment variable not set. Order status notifications will be skipped.")
	}

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8080"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("Invalid integer environment variable. Falling back to default.", "key", key, "value", value)
		return defaultValue
	}
	return n
}
