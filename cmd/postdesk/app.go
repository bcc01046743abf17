// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"postdesk/internal/ai"
	"postdesk/internal/config"
	"postdesk/internal/export"
	"postdesk/internal/kv"
	"postdesk/internal/models"
	"postdesk/internal/storage"
	"postdesk/internal/store"
	"postdesk/internal/summary"
)

// app holds everything the commands share.
type app struct {
	cfg        *config.Config
	kv         *kv.Store
	posts      *store.PostStore
	categories *store.CategoryStore
	settings   *store.SettingsStore
	registry   *ai.Registry
	summary    *summary.Generator
	storage    *storage.Client
}

func loadEnv(paths ...string) {
	config.LoadDotEnv(paths...)
}

// newApp loads configuration, sets up logging and opens the stores.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	// Text logs in development, JSON everywhere else.
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, opts)
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	kvs, err := kv.Open(kv.Options{
		Backend:        cfg.StoreBackend,
		DataDir:        cfg.DataDir,
		SQLitePath:     cfg.SQLitePath,
		ValkeyHost:     cfg.ValkeyHost,
		ValkeyPort:     cfg.ValkeyPort,
		ValkeyPassword: cfg.ValkeyPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	slog.Debug("store opened", "backend", kvs.Backend().Name())

	registry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})
	slog.Debug("ai providers initialized",
		"active", registry.ActiveName(),
		"available", registry.Available(),
	)

	gen := summary.New(registry, summary.Options{
		Timeout:         cfg.AITimeout,
		EmptyAsFallback: cfg.AIEmptyAsFallback,
	})

	storageClient, err := storage.New(storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
	})
	if err != nil {
		kvs.Close()
		return nil, fmt.Errorf("initialize s3 storage: %w", err)
	}

	settings := store.NewSettingsStore(ctx, kvs)
	settings.OnThemeChange(func(t models.Theme) {
		slog.Info("theme changed", "theme", t)
	})

	return &app{
		cfg:        cfg,
		kv:         kvs,
		posts:      store.NewPostStore(ctx, kvs),
		categories: store.NewCategoryStore(ctx, kvs),
		settings:   settings,
		registry:   registry,
		summary:    gen,
		storage:    storageClient,
	}, nil
}

// backupTarget is everything the backup commands need from the bucket.
type backupTarget interface {
	export.Uploader
	export.Downloader
	export.Pruner
}

// backups returns the backup target, or nil when storage is disabled.
// A nil *storage.Client must not be stored in the interface.
func (a *app) backups() backupTarget {
	if a.storage == nil {
		return nil
	}
	return a.storage
}

func (a *app) snapshot() export.Snapshot {
	return export.Snapshot{
		ExportedAt: timeNow().UTC(),
		Posts:      a.posts.List(),
		Categories: a.categories.List(),
		Settings:   a.settings.Current(),
	}
}

// restore replaces the stored collections with the snapshot contents.
// Each collection is validated as a whole before it is written.
func (a *app) restore(ctx context.Context, snap export.Snapshot) error {
	if err := a.categories.Replace(ctx, snap.Categories); err != nil {
		return fmt.Errorf("restore categories: %w", err)
	}
	if err := a.posts.Replace(ctx, snap.Posts); err != nil {
		return fmt.Errorf("restore posts: %w", err)
	}
	if _, err := a.settings.Replace(ctx, snap.Settings); err != nil {
		return fmt.Errorf("restore settings: %w", err)
	}
	return nil
}

func (a *app) Close() error {
	return a.kv.Close()
}
