package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port           string
	Environment    string
	FrontendURL    string
	AllowedOrigins []string

	JWTSecret string
	TokenTTL  time.Duration

	RedisURL      string
	RedisPassword string
	RedisDB       int

	SessionTTL      time.Duration
	SessionIdle     time.Duration
	CleanupInterval time.Duration

	DifficultyFile string
	SearchParallel bool
	SearchTimeout  time.Duration

	LogLevel  string
	LogPretty bool
}

// LoadEnv reads .env from the working directory or its parent, when present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Debug().Msg("no .env file found")
		}
	}
}

func LoadConfig() *Config {
	environment := GetEnv("ENVIRONMENT", "development")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	for _, origin := range strings.Split(GetEnv("ALLOWED_ORIGINS", ""), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			allowedOrigins = append(allowedOrigins, trimmed)
		}
	}

	return &Config{
		Port:           GetEnv("PORT", "8080"),
		Environment:    environment,
		FrontendURL:    frontendURL,
		AllowedOrigins: allowedOrigins,

		JWTSecret: GetEnv("JWT_SECRET", "change-this-secret-in-production"),
		TokenTTL:  time.Duration(GetEnvAsInt("TOKEN_TTL_HOURS", 24)) * time.Hour,

		RedisURL:      GetEnv("REDIS_URL", ""),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvAsInt("REDIS_DB", 0),

		SessionTTL:      time.Duration(GetEnvAsInt("SESSION_TTL_MINUTES", 24*60)) * time.Minute,
		SessionIdle:     time.Duration(GetEnvAsInt("SESSION_IDLE_MINUTES", 60)) * time.Minute,
		CleanupInterval: time.Duration(GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 10)) * time.Minute,

		DifficultyFile: GetEnv("DIFFICULTY_FILE", ""),
		SearchParallel: GetEnvAsBool("SEARCH_PARALLEL", false),
		SearchTimeout:  GetEnvAsDuration("SEARCH_TIMEOUT", 10*time.Second),

		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogPretty: GetEnvAsBool("LOG_PRETTY", environment != "production"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer value, using default")
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).Msg("invalid boolean value, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsDuration parses values such as "30s" or "2m".
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil || value < 0 {
		log.Warn().Str("key", key).Str("value", valueStr).Dur("default", defaultValue).Msg("invalid duration value, using default")
		return defaultValue
	}
	return value
}
