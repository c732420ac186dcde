package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port               string
	GinMode            string
	LogLevel           string
	CatalogFile        string
	Currency           string
	JWTSecret          string
	TokenTTL           time.Duration
	StaffUsers         string
	LoginRatePerMinute int
	LoadConcurrency    int
	ComparisonCacheTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to load .env file, using environment only")
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CatalogFile:        getEnv("CATALOG_FILE", "config/catalog.yaml"),
		Currency:           getEnv("CURRENCY", "BRL"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           getDuration("TOKEN_TTL", 8*time.Hour),
		StaffUsers:         getEnv("STAFF_USERS", ""),
		LoginRatePerMinute: getInt("LOGIN_RATE_PER_MINUTE", 10),
		LoadConcurrency:    getInt("LOAD_CONCURRENCY", 4),
		ComparisonCacheTTL: getDuration("COMPARISON_CACHE_TTL", 10*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}
