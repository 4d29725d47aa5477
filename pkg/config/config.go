package config

import (
	"os"
	"strconv"
	"time"
)

type GlobalConfig struct {
	ServerPort  string
	Environment string // development | production
	LogLevel    string
}

func LoadGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		ServerPort:  GetEnv("SERVER_PORT"),
		Environment: GetEnvOrDefault("APP_ENV", "development"),
		LogLevel:    GetEnvOrDefault("LOG_LEVEL", "info"),
	}
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (g GlobalConfig) IsProduction() bool {
	return g.Environment == "production"
}

// GetEnv retrieves the value of the environment variable named by the key.
func GetEnv(key string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	} else {
		panic("critical config missing: " + key)
	}
}

// GetEnvOrDefault retrieves the value or returns default if not set.
func GetEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

// GetEnvInt parses an integer variable, falling back on a missing or malformed value.
func GetEnvInt(key string, defaultValue int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// GetEnvDuration parses a Go duration string such as "5s" or "1h".
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
