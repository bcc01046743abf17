// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store holds the dashboard collections (posts, categories) and the
// settings profile in memory and mirrors every change to a kv.Store. The
// in-memory copy is authoritative; persistence is best-effort.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Storage keys. Each key loads and fails independently.
const (
	PostsKey      = "ai-blog-dashboard-posts-v1"
	CategoriesKey = "ai-blog-dashboard-categories-v1"
	SettingsKey   = "ai-blog-dashboard-settings-v1"
)

// Validation limits for form fields.
const (
	maxTitleLen   = 300
	maxSummaryLen = 1_000
	maxNameLen    = 100
	maxSlugLen    = 120
	maxProfileLen = 200
)

// ErrNotFound is returned when an id does not exist in the collection.
var ErrNotFound = errors.New("store: not found")

// ValidationError reports a required or malformed form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// DuplicateSlugError reports a category slug already used by another category.
type DuplicateSlugError struct {
	Slug string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("slug %q is already in use", e.Slug)
}

// requireText trims s and checks it is non-empty and within max runes.
func requireText(field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Field: field, Message: "must not be empty"}
	}
	if utf8.RuneCountInString(s) > max {
		return "", &ValidationError{Field: field, Message: fmt.Sprintf("too long (max %d characters)", max)}
	}
	return s, nil
}

// optionalText trims s and checks it is within max runes.
func optionalText(field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > max {
		return "", &ValidationError{Field: field, Message: fmt.Sprintf("too long (max %d characters)", max)}
	}
	return s, nil
}

// idSource hands out creation-time-derived ids that never repeat, even for
// several creates inside the same millisecond.
type idSource struct {
	mu   sync.Mutex
	last int64
}

// next returns max(now in ms, last+1).
func (s *idSource) next(now time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := now.UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// observe makes sure future ids are larger than id.
func (s *idSource) observe(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id > s.last {
		s.last = id
	}
}
