// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"postdesk/internal/kv"
	"postdesk/internal/models"
)

// storedSettings is the persisted shape. Pointer fields tell missing keys
// apart from present ones; unknown keys are ignored by encoding/json.
type storedSettings struct {
	Theme       *models.Theme `json:"theme"`
	DisplayName *string       `json:"displayName"`
	FocusText   *string       `json:"focusText"`
}

// SettingsStore holds the single settings profile. Construct one per process
// and pass it to whoever needs it.
type SettingsStore struct {
	mu        sync.RWMutex
	kv        *kv.Store
	current   models.Settings
	observers []func(models.Theme)
}

// NewSettingsStore loads the persisted profile merged over defaults.
func NewSettingsStore(ctx context.Context, kvs *kv.Store) *SettingsStore {
	s := &SettingsStore{kv: kvs}
	s.current = s.read(ctx)
	return s
}

// Load re-reads the persisted profile, merges it over the defaults and makes
// it current. Any read failure yields the defaults.
func (s *SettingsStore) Load(ctx context.Context) models.Settings {
	loaded := s.read(ctx)

	s.mu.Lock()
	prev := s.current.Theme
	s.current = loaded
	observers := s.observers
	s.mu.Unlock()

	if prev != loaded.Theme {
		notify(observers, loaded.Theme)
	}
	return loaded
}

// Current returns the in-memory profile without touching storage.
func (s *SettingsStore) Current() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update merges the non-nil fields of p and persists the result. A blank
// name becomes UnnamedDisplayName and blank focus text the default.
func (s *SettingsStore) Update(ctx context.Context, p models.SettingsPatch) (models.Settings, error) {
	if p.Theme != nil && !p.Theme.Valid() {
		return models.Settings{}, &ValidationError{Field: "theme", Message: fmt.Sprintf("unknown theme %q", *p.Theme)}
	}
	if p.DisplayName != nil {
		if _, err := optionalText("displayName", *p.DisplayName, maxProfileLen); err != nil {
			return models.Settings{}, err
		}
	}
	if p.FocusText != nil {
		if _, err := optionalText("focusText", *p.FocusText, maxProfileLen); err != nil {
			return models.Settings{}, err
		}
	}

	return s.mutate(ctx, func(cur *models.Settings) {
		if p.Theme != nil {
			cur.Theme = *p.Theme
		}
		if p.DisplayName != nil {
			cur.DisplayName = orDefault(*p.DisplayName, models.UnnamedDisplayName)
		}
		if p.FocusText != nil {
			cur.FocusText = orDefault(*p.FocusText, models.DefaultFocusText)
		}
	}), nil
}

// ResetToDefault restores and persists the fixed default profile.
func (s *SettingsStore) ResetToDefault(ctx context.Context) models.Settings {
	return s.mutate(ctx, func(cur *models.Settings) {
		*cur = models.DefaultSettings()
	})
}

// ToggleTheme flips between dark and light.
func (s *SettingsStore) ToggleTheme(ctx context.Context) models.Settings {
	return s.mutate(ctx, func(cur *models.Settings) {
		cur.Theme = cur.Theme.Toggled()
	})
}

// OnThemeChange registers fn to run after the theme changes. fn runs on the
// goroutine that made the change, outside the store lock.
func (s *SettingsStore) OnThemeChange(fn func(models.Theme)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// mutate applies fn to the current profile, persists it and notifies theme
// observers when the theme changed.
func (s *SettingsStore) mutate(ctx context.Context, fn func(*models.Settings)) models.Settings {
	s.mu.Lock()
	prev := s.current.Theme
	next := s.current
	fn(&next)
	s.current = next
	_ = s.kv.Save(ctx, SettingsKey, next)
	observers := s.observers
	s.mu.Unlock()

	if prev != next.Theme {
		notify(observers, next.Theme)
	}
	return next
}

// read loads the persisted record merged over the defaults.
func (s *SettingsStore) read(ctx context.Context) models.Settings {
	out := models.DefaultSettings()

	var stored storedSettings
	if !s.kv.Load(ctx, SettingsKey, &stored) {
		return out
	}
	if stored.Theme != nil && stored.Theme.Valid() {
		out.Theme = *stored.Theme
	}
	if stored.DisplayName != nil {
		out.DisplayName = orDefault(*stored.DisplayName, models.UnnamedDisplayName)
	}
	if stored.FocusText != nil {
		out.FocusText = orDefault(*stored.FocusText, models.DefaultFocusText)
	}
	return out
}

func notify(observers []func(models.Theme), t models.Theme) {
	for _, fn := range observers {
		fn(t)
	}
}

func orDefault(s, def string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return def
}
