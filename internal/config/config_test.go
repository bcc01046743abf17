// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var allVars = []string{
	"APP_HOST", "APP_PORT", "APP_ENV", "LOG_LEVEL",
	"STORE_BACKEND", "DATA_DIR", "SQLITE_PATH",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
	"AI_PROVIDER",
	"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
	"MISTRAL_API_KEY", "MISTRAL_MODEL", "MISTRAL_BASE_URL",
	"AI_TIMEOUT", "AI_EMPTY_AS_FALLBACK", "AI_RATE_LIMIT", "FORM_IDLE_TTL",
	"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET",
}

// clearEnv sets every variable Load reads to empty, which envOrDefault
// treats the same as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allVars {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "127.0.0.1")
	check("Port", cfg.Port, "8080")
	check("Env", cfg.Env, "development")
	check("StoreBackend", cfg.StoreBackend, "file")
	check("DataDir", cfg.DataDir, "data")
	check("SQLitePath", cfg.SQLitePath, filepath.Join("data", "postdesk.db"))
	check("ValkeyHost", cfg.ValkeyHost, "localhost")
	check("ValkeyPort", cfg.ValkeyPort, "6379")
	check("AIProvider", cfg.AIProvider, "openai")
	check("OpenAIKey", cfg.OpenAIKey, "")
	check("OpenAIModel", cfg.OpenAIModel, "gpt-4o-mini")
	check("OpenAIBaseURL", cfg.OpenAIBaseURL, "https://api.openai.com/v1")
	check("MistralModel", cfg.MistralModel, "mistral-small-latest")
	check("MistralBaseURL", cfg.MistralBaseURL, "https://api.mistral.ai/v1")
	check("S3Region", cfg.S3Region, "us-east-1")
	check("S3Bucket", cfg.S3Bucket, "postdesk-backups")

	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.AITimeout != 20*time.Second {
		t.Errorf("AITimeout = %v, want 20s", cfg.AITimeout)
	}
	if cfg.AIEmptyAsFallback {
		t.Error("AIEmptyAsFallback should default to false")
	}
	if cfg.AIRateLimit != 20 {
		t.Errorf("AIRateLimit = %d, want 20", cfg.AIRateLimit)
	}
	if cfg.FormIdleTTL != 30*time.Minute {
		t.Errorf("FormIdleTTL = %v, want 30m", cfg.FormIdleTTL)
	}
}

// TestLoad_EnvOverrides verifies that every environment variable properly
// overrides the default value.
func TestLoad_EnvOverrides(t *testing.T) {
	overrides := map[string]string{
		"APP_HOST":             "0.0.0.0",
		"APP_PORT":             "9090",
		"APP_ENV":              "testing",
		"LOG_LEVEL":            "DEBUG",
		"STORE_BACKEND":        "SQLite",
		"DATA_DIR":             "/var/lib/postdesk",
		"SQLITE_PATH":          "/tmp/pd.db",
		"VALKEY_HOST":          "cache.example.com",
		"VALKEY_PORT":          "6380",
		"VALKEY_PASSWORD":      "cachepass",
		"AI_PROVIDER":          "mistral",
		"OPENAI_API_KEY":       "sk-test-key",
		"OPENAI_MODEL":         "gpt-4-turbo",
		"OPENAI_BASE_URL":      "https://custom.openai.example.com/v1/",
		"MISTRAL_API_KEY":      "mistral-test-key",
		"MISTRAL_MODEL":        "mistral-medium",
		"MISTRAL_BASE_URL":     "https://custom.mistral.example.com/v1",
		"AI_TIMEOUT":           "5s",
		"AI_EMPTY_AS_FALLBACK": "true",
		"AI_RATE_LIMIT":        "3",
		"FORM_IDLE_TTL":        "2h",
		"S3_ENDPOINT":          "https://s3.example.com",
		"S3_REGION":            "eu-central-1",
		"S3_ACCESS_KEY":        "AKIATEST",
		"S3_SECRET_KEY":        "secrettest",
		"S3_BUCKET":            "my-backups",
	}
	for key, val := range overrides {
		t.Setenv(key, val)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "0.0.0.0")
	check("Port", cfg.Port, "9090")
	check("Env", cfg.Env, "testing")
	check("StoreBackend", cfg.StoreBackend, "sqlite")
	check("DataDir", cfg.DataDir, "/var/lib/postdesk")
	check("SQLitePath", cfg.SQLitePath, "/tmp/pd.db")
	check("ValkeyHost", cfg.ValkeyHost, "cache.example.com")
	check("ValkeyPort", cfg.ValkeyPort, "6380")
	check("ValkeyPassword", cfg.ValkeyPassword, "cachepass")
	check("AIProvider", cfg.AIProvider, "mistral")
	check("OpenAIKey", cfg.OpenAIKey, "sk-test-key")
	check("OpenAIModel", cfg.OpenAIModel, "gpt-4-turbo")
	check("OpenAIBaseURL", cfg.OpenAIBaseURL, "https://custom.openai.example.com/v1")
	check("MistralKey", cfg.MistralKey, "mistral-test-key")
	check("MistralModel", cfg.MistralModel, "mistral-medium")
	check("MistralBaseURL", cfg.MistralBaseURL, "https://custom.mistral.example.com/v1")
	check("S3Endpoint", cfg.S3Endpoint, "https://s3.example.com")
	check("S3Region", cfg.S3Region, "eu-central-1")
	check("S3AccessKey", cfg.S3AccessKey, "AKIATEST")
	check("S3SecretKey", cfg.S3SecretKey, "secrettest")
	check("S3Bucket", cfg.S3Bucket, "my-backups")

	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.AITimeout != 5*time.Second {
		t.Errorf("AITimeout = %v", cfg.AITimeout)
	}
	if !cfg.AIEmptyAsFallback {
		t.Error("AIEmptyAsFallback = false, want true")
	}
	if cfg.AIRateLimit != 3 {
		t.Errorf("AIRateLimit = %d", cfg.AIRateLimit)
	}
	if cfg.FormIdleTTL != 2*time.Hour {
		t.Errorf("FormIdleTTL = %v", cfg.FormIdleTTL)
	}
}

// TestLoad_SQLitePathFollowsDataDir checks the derived default.
func TestLoad_SQLitePathFollowsDataDir(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_DIR", "/srv/pd")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if want := filepath.Join("/srv/pd", "postdesk.db"); cfg.SQLitePath != want {
		t.Errorf("SQLitePath = %q, want %q", cfg.SQLitePath, want)
	}
}

// TestLoad_Invalid verifies that malformed values are rejected with an
// error naming the variable.
func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"STORE_BACKEND", "postgres"},
		{"AI_PROVIDER", "gemini"},
		{"AI_TIMEOUT", "soon"},
		{"AI_TIMEOUT", "-1s"},
		{"FORM_IDLE_TTL", "0s"},
		{"AI_EMPTY_AS_FALLBACK", "maybe"},
		{"AI_RATE_LIMIT", "0"},
		{"AI_RATE_LIMIT", "many"},
		{"LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() should reject %s=%q", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error should mention %s, got: %v", tt.key, err)
			}
		})
	}
}

// TestLoad_ProductionRejectsMemory verifies that production refuses the
// non-persistent backend.
func TestLoad_ProductionRejectsMemory(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_BACKEND", "memory")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject memory backend in production")
	}

	t.Setenv("STORE_BACKEND", "file")
	if _, err := Load(); err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
}

// TestLoadDotEnv verifies that .env files fill unset variables only.
func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("APP_PORT")
	os.Unsetenv("DATA_DIR")
	t.Setenv("APP_HOST", "10.0.0.1")

	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=7070\nAPP_HOST=0.0.0.0\nDATA_DIR=/from/env/file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))
	t.Cleanup(func() {
		os.Unsetenv("APP_PORT")
		os.Unsetenv("DATA_DIR")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Port != "7070" || cfg.DataDir != "/from/env/file" {
		t.Errorf("Port = %q, DataDir = %q; want values from file", cfg.Port, cfg.DataDir)
	}
	if cfg.Host != "10.0.0.1" {
		t.Errorf("Host = %q; existing variable must win", cfg.Host)
	}
}

// TestAddr verifies the server listen address format.
func TestAddr(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     string
		expected string
	}{
		{name: "default", host: "127.0.0.1", port: "8080", expected: "127.0.0.1:8080"},
		{name: "all interfaces", host: "0.0.0.0", port: "3000", expected: "0.0.0.0:3000"},
		{name: "empty host", host: "", port: "8080", expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Host: tt.host, Port: tt.port}
			if got := cfg.Addr(); got != tt.expected {
				t.Errorf("Addr() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestIsDev verifies the IsDev method for various environment modes.
func TestIsDev(t *testing.T) {
	tests := []struct {
		env      string
		expected bool
	}{
		{"development", true},
		{"production", false},
		{"testing", false},
		{"", false},
		{"Development", false},
	}

	for _, tt := range tests {
		cfg := Config{Env: tt.env}
		if got := cfg.IsDev(); got != tt.expected {
			t.Errorf("IsDev() = %v, want %v (env=%q)", got, tt.expected, tt.env)
		}
	}
}
