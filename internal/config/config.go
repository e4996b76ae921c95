// Package config reads runtime settings from environment variables,
// falling back to sensible local-development defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all runtime settings for the campus events server.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWTSecret signs identity tokens (HS256). Override in production.
	JWTSecret string
	// TokenTTL is the fixed token lifetime. Tokens are not revocable, so
	// this is also the staleness window for role changes.
	TokenTTL time.Duration

	// MemoryStore runs the server against the in-memory store instead of
	// Postgres. Local development only.
	MemoryStore bool
}

// Load builds a Config from the environment.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "campusevents"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:    getDuration("TOKEN_TTL", 24*time.Hour),
		MemoryStore: os.Getenv("MEMORY_STORE") == "true",
	}
}

// DSN builds a libpq-compatible connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		// The token lifetime bounds how long a stale role claim stays
		// valid, so a typo here should not pass silently.
		log.Warn().Str("key", key).Str("value", v).Dur("default", fallback).
			Msg("invalid duration, using default")
		return fallback
	}
	return d
}
