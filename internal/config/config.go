// Package config loads the core's own runtime knobs from the environment.
// Loading configuration from a central secrets/config service is an external
// collaborator per spec.md §1 ("Deliberately OUT of scope") — this package
// only reads process environment variables with defaults, the same getEnv
// convention services/order_service/src/database/connection.go uses, it does
// not implement a config service.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort string
	Environment string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	RedisURL string

	AdminToken string

	LogLevel string

	ScanDedupWindow time.Duration
}

func Load() *Config {
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "supermandi_pos"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		DBMaxOpenConns:    getEnvInt("DB_MAX_CONNECTIONS", 25),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second,

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		AdminToken: getEnv("ADMIN_TOKEN", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		ScanDedupWindow: time.Duration(getEnvInt("SCAN_DEDUP_WINDOW_MS", 500)) * time.Millisecond,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// AdminEnabled reports whether the admin surface should be mounted. An unset
// admin secret disables the admin surface per spec.md §6.
func (c *Config) AdminEnabled() bool {
	return c.AdminToken != ""
}
