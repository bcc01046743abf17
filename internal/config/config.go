// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends accepted by STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendValkey = "valkey"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	LogLevel slog.Level

	// Persistence
	StoreBackend string
	DataDir      string
	SQLitePath   string

	// Valkey (Redis-compatible), used when StoreBackend is "valkey"
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// AI provider settings
	AIProvider        string // "openai", "mistral"
	OpenAIKey         string
	OpenAIModel       string
	OpenAIBaseURL     string
	MistralKey        string
	MistralModel      string
	MistralBaseURL    string
	AITimeout         time.Duration
	AIEmptyAsFallback bool
	AIRateLimit       int // summary requests per client per minute

	// Edit form sessions
	FormIdleTTL time.Duration

	// S3-compatible backup storage (optional)
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
}

// LoadDotEnv loads variables from the given files (".env" when none) into
// the process environment. Variables already set are not overridden and
// missing files are ignored.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("could not read env file", "path", p, "error", err)
		}
	}
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error for malformed values.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "127.0.0.1"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		StoreBackend: strings.ToLower(envOrDefault("STORE_BACKEND", BackendFile)),
		DataDir:      envOrDefault("DATA_DIR", "data"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AIProvider:     strings.ToLower(envOrDefault("AI_PROVIDER", "openai")),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:  strings.TrimRight(envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/"),
		MistralKey:     os.Getenv("MISTRAL_API_KEY"),
		MistralModel:   envOrDefault("MISTRAL_MODEL", "mistral-small-latest"),
		MistralBaseURL: strings.TrimRight(envOrDefault("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"), "/"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "postdesk-backups"),
	}
	cfg.SQLitePath = envOrDefault("SQLITE_PATH", filepath.Join(cfg.DataDir, "postdesk.db"))

	var err error
	if cfg.LogLevel, err = parseLevel(envOrDefault("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.AITimeout, err = parsePositiveDuration("AI_TIMEOUT", "20s"); err != nil {
		return nil, err
	}
	if cfg.FormIdleTTL, err = parsePositiveDuration("FORM_IDLE_TTL", "30m"); err != nil {
		return nil, err
	}
	if cfg.AIEmptyAsFallback, err = strconv.ParseBool(envOrDefault("AI_EMPTY_AS_FALLBACK", "false")); err != nil {
		return nil, fmt.Errorf("AI_EMPTY_AS_FALLBACK: %w", err)
	}
	if cfg.AIRateLimit, err = strconv.Atoi(envOrDefault("AI_RATE_LIMIT", "20")); err != nil || cfg.AIRateLimit <= 0 {
		return nil, fmt.Errorf("AI_RATE_LIMIT must be a positive integer, got %q", os.Getenv("AI_RATE_LIMIT"))
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendFile, BackendSQLite, BackendValkey:
	default:
		return nil, fmt.Errorf("STORE_BACKEND must be one of memory, file, sqlite, valkey; got %q", cfg.StoreBackend)
	}
	switch cfg.AIProvider {
	case "openai", "mistral":
	default:
		return nil, fmt.Errorf("AI_PROVIDER must be openai or mistral, got %q", cfg.AIProvider)
	}

	if cfg.Env == "production" && cfg.StoreBackend == BackendMemory {
		return nil, fmt.Errorf("STORE_BACKEND=memory loses all data on restart and is not allowed in production")
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return l, nil
}
