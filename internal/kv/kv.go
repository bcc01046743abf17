// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package kv provides best-effort key-value persistence for dashboard state.
// A Backend moves raw bytes; Store layers JSON encoding on top and turns every
// read or write failure into a logged, non-fatal event. The in-memory state
// held by callers stays the source of truth for the running process.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotFound is returned by a Backend when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Backend is a raw key-value storage engine.
type Backend interface {
	// Get returns the stored bytes for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Name returns the backend identifier (e.g., "file", "sqlite").
	Name() string

	// Close releases any resources held by the backend.
	Close() error
}

// Store reads and writes JSON documents through a Backend.
type Store struct {
	backend Backend
}

// NewStore wraps a backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Backend returns the underlying storage engine.
func (s *Store) Backend() Backend {
	return s.backend
}

// Load decodes the JSON document stored under key into dst. It returns false
// when the key is missing, the backend fails, or the document is corrupt; the
// caller then falls back to its own default. dst may be partially written
// when false is returned, so callers should decode into a fresh value.
func (s *Store) Load(ctx context.Context, key string, dst any) bool {
	raw, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		slog.Debug("kv key absent, using default", "key", key, "backend", s.backend.Name())
		return false
	}
	if err != nil {
		slog.Warn("kv read failed, using default", "key", key, "backend", s.backend.Name(), "error", err)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		slog.Warn("kv document corrupt, using default", "key", key, "backend", s.backend.Name(), "error", err)
		return false
	}
	return true
}

// Save encodes v as JSON and writes it under key. Failures are logged and
// otherwise ignored. The returned error is for callers that want to report
// it (the CLI does); dashboard stores discard it.
func (s *Store) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Warn("kv encode failed, write skipped", "key", key, "error", err)
		return fmt.Errorf("kv encode %s: %w", key, err)
	}
	if err := s.backend.Put(ctx, key, raw); err != nil {
		slog.Warn("kv write failed, keeping in-memory state", "key", key, "backend", s.backend.Name(), "error", err)
		return fmt.Errorf("kv write %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
