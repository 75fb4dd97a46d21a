package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env                 string
	HTTPPort            string
	LogLevel            string
	MongoURI            string
	MongoDatabase       string
	MongoConnectTimeout time.Duration
	ListingTTL          time.Duration
	ResetCooldown       time.Duration
	GeocoderCacheTTL    time.Duration
	SeedCategories      bool
	SeedDemoUsers       int64
	ShutdownTimeout     time.Duration
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	defaultLevel := "info"
	if env == "development" {
		defaultLevel = "debug"
	}

	cfg := &Config{
		Env:           env,
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", defaultLevel),
		MongoURI:      getMongoURI(),
		MongoDatabase: getEnv("MONGO_DATABASE", "main"),
	}

	if env == "production" && cfg.MongoURI == "" {
		return nil, fmt.Errorf("config: MONGO_URI обязателен в production")
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
		log.Printf("config: WARNING - MONGO_URI не задан, используется %s", cfg.MongoURI)
	}

	var err error
	if cfg.MongoConnectTimeout, err = parseDuration("MONGO_CONNECT_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	// 45 дней
	if cfg.ListingTTL, err = parseDuration("LISTING_TTL", "1080h"); err != nil {
		return nil, err
	}
	if cfg.ResetCooldown, err = parseDuration("PASSWORD_RESET_COOLDOWN", "5m"); err != nil {
		return nil, err
	}
	if cfg.GeocoderCacheTTL, err = parseDuration("GEOCODER_CACHE_TTL", "24h"); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	if cfg.SeedCategories, err = strconv.ParseBool(getEnv("SEED_CATEGORIES", "true")); err != nil {
		return nil, fmt.Errorf("config: SEED_CATEGORIES: %w", err)
	}
	if cfg.SeedDemoUsers, err = strconv.ParseInt(getEnv("SEED_DEMO_USERS", "0"), 10, 64); err != nil {
		return nil, fmt.Errorf("config: SEED_DEMO_USERS: %w", err)
	}
	if env == "production" && cfg.SeedDemoUsers > 0 {
		return nil, fmt.Errorf("config: SEED_DEMO_USERS недоступен в production")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или дефолт. Пустое значение считается незаданным.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// getMongoURI возвращает MONGO_URI либо собирает его из отдельных переменных.
func getMongoURI() string {
	if uri := getEnv("MONGO_URI", ""); uri != "" {
		return uri
	}

	host := getEnv("MONGO_HOST", "")
	port := getEnv("MONGO_PORT", "27017")
	user := getEnv("MONGO_USER", "")
	password := getEnv("MONGO_PASSWORD", "")
	if host == "" {
		return ""
	}

	u := url.URL{Scheme: "mongodb", Host: host + ":" + port}
	if user != "" {
		// url.UserPassword экранирует спецсимволы в логине и пароле
		u.User = url.UserPassword(user, password)
	}
	return u.String()
}

func parseDuration(key, fallback string) (time.Duration, error) {
	v := getEnv(key, fallback)
	dur, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить %s=%q: %w", key, v, err)
	}
	return dur, nil
}
