package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort                  = "8080"
	DefaultTokenTTLHours         = 7 * 24
	DefaultRequestTimeoutSeconds = 10
	DefaultBcryptCost            = 10
	DefaultLogLevel              = "info"
)

type Config struct {
	Env            string
	Port           string
	DBURL          string
	RedisURL       string
	RedisPassword  string
	JWTSecret      string
	TokenTTLHours  int
	RequestTimeout time.Duration
	BcryptCost     int
	LogLevel       string
}

// TokenTTL is both the bearer token lifetime and the session cache entry TTL.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func Load() *Config {
	loadEnvFile(getEnv("ENV", "development"))

	return &Config{
		Env:            getEnv("ENV", "development"),
		Port:           getEnv("PORT", DefaultPort),
		DBURL:          mustGetEnv("DB_URL"),
		RedisURL:       getEnv("REDIS_URL", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		JWTSecret:      mustGetEnv("JWT_SECRET"),
		TokenTTLHours:  getEnvAsInt("TOKEN_TTL_HOURS", DefaultTokenTTLHours),
		RequestTimeout: time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SECONDS", DefaultRequestTimeoutSeconds)) * time.Second,
		BcryptCost:     getEnvAsInt("BCRYPT_COST", DefaultBcryptCost),
		LogLevel:       getEnv("LOG_LEVEL", DefaultLogLevel),
	}
}

// loadEnvFile reads config/.env.dev or config/.env.prod if present.
// Variables already set in the process environment win over file values.
func loadEnvFile(env string) {
	name := ".env.dev"
	if env == "production" {
		name = ".env.prod"
	}

	path := filepath.Join("config", name)
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("Failed to load %s: %v", path, err)
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
