package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env                  string
	AppName              string
	AppVersion           string
	HTTPPort             string
	DatabasePath         string
	AllowedOrigins       []string
	RateLimitLimit       int64
	RateLimitPeriod      time.Duration
	ModerateChatMessages bool
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:          env,
		AppName:      getEnv("APP_NAME", "Workova"),
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "./data/workova.db"),
	}

	// CORS allowed origins
	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if env == "production" {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:8081"}
	} else {
		cfg.AllowedOrigins = strings.Split(originsStr, ",")
		for i, origin := range cfg.AllowedOrigins {
			cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
		}
	}

	// Rate limiting настройки
	cfg.RateLimitLimit = mustParseInt64(getEnv("RATE_LIMIT_LIMIT", "10"))
	cfg.RateLimitPeriod = mustParseDuration(getEnv("RATE_LIMIT_PERIOD", "1m"))

	// По умолчанию сообщения чата не модерируются; флаг включает
	// проверку без изменения кода.
	cfg.ModerateChatMessages = getEnv("MODERATE_CHAT_MESSAGES", "false") == "true"

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// mustParseDuration безопасно парсит строку в duration.
func mustParseDuration(v string) time.Duration {
	dur, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: не удалось распарсить длительность %q: %v", v, err)
	}
	return dur
}

// mustParseInt64 безопасно парсит строку в int64.
func mustParseInt64(v string) int64 {
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("config: не удалось распарсить число %q: %v", v, err)
	}
	return num
}
