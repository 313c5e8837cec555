package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	MaxConcurrent  int
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	ThemeFile      string
	DefaultLocale  string
}

// Load reads configuration from the environment. Values in a .env file in
// the working directory are used when the variable is not already set.
func Load() *Config {
	log.Println("Loading configuration from environment")

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARNING: failed to read .env: %v", err)
	}

	port := getEnv("PORT", "8080")
	log.Printf("PORT: %s", port)

	maxConcurrent := getEnvAsInt("MAX_CONCURRENT", 8)
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	log.Printf("MAX_CONCURRENT: %d", maxConcurrent)

	requestTimeout := getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second)
	log.Printf("REQUEST_TIMEOUT: %v", requestTimeout)

	maxBodyBytes := int64(getEnvAsInt("MAX_BODY_BYTES", 10<<20))
	if maxBodyBytes <= 0 {
		maxBodyBytes = 10 << 20
	}
	log.Printf("MAX_BODY_BYTES: %d", maxBodyBytes)

	themeFile := getEnv("THEME_FILE", "")
	defaultLocale := getEnv("DEFAULT_LOCALE", "vi")
	log.Printf("DEFAULT_LOCALE: %s", defaultLocale)

	return &Config{
		Port:           port,
		MaxConcurrent:  maxConcurrent,
		RequestTimeout: requestTimeout,
		MaxBodyBytes:   maxBodyBytes,
		ThemeFile:      themeFile,
		DefaultLocale:  defaultLocale,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Environment variable %s not set, using default: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Failed to parse %s as integer: %v, using default: %d", key, err, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Failed to parse %s as duration: %v, using default: %v", key, err, defaultValue)
		return defaultValue
	}
	return value
}
