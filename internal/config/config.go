package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config структура для хранения настроек приложения
type Config struct {
	APIBaseURL  string
	TokenFile   string
	DatabaseDSN string
}

// Load загружает настройки из .env (если есть) и переменных окружения
func Load() *Config {
	// .env может отсутствовать, это не ошибка
	_ = godotenv.Load()

	config := &Config{
		APIBaseURL:  getEnv("PREPIQ_API_URL", "http://localhost:8000"),
		TokenFile:   getEnv("PREPIQ_TOKEN_FILE", defaultTokenFile()),
		DatabaseDSN: os.Getenv("PREPIQ_DB_DSN"),
	}

	return config
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// defaultTokenFile возвращает путь к файлу токена в конфиг-директории пользователя
func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".prepiq_token"
	}
	return filepath.Join(dir, "prepiq", "token")
}
