// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"postdesk/internal/kv"
	"postdesk/internal/models"
	"postdesk/internal/slug"
)

// CategoryStore owns all categories and enforces slug uniqueness.
type CategoryStore struct {
	mu   sync.RWMutex
	kv   *kv.Store
	cats []models.Category // newest insert first
	ids  idSource
	now  func() time.Time
}

// NewCategoryStore loads categories from kvs, starting from the seed set when
// the key is absent or unreadable.
func NewCategoryStore(ctx context.Context, kvs *kv.Store) *CategoryStore {
	s := &CategoryStore{kv: kvs, now: time.Now}

	var cats []models.Category
	if !kvs.Load(ctx, CategoriesKey, &cats) || cats == nil {
		cats = seedCategories(s.now())
		slog.Info("categories initialised from seed", "count", len(cats))
	}
	s.cats = cats
	for _, c := range cats {
		s.ids.observe(c.ID)
	}
	return s
}

// seedCategories returns the categories shown on first run.
func seedCategories(now time.Time) []models.Category {
	day := 24 * time.Hour
	return []models.Category{
		{ID: 1, Name: "Front-end", Slug: "front-end", Color: "#38bdf8", CreatedAt: now.Add(-4 * day)},
		{ID: 2, Name: "AI", Slug: "ai", Color: "#34d399", CreatedAt: now.Add(-3 * day)},
		{ID: 3, Name: "Kariyer", Slug: "kariyer", Color: "#a78bfa", CreatedAt: now.Add(-2 * day)},
	}
}

// List returns all categories, most recent first, ties in collection order.
func (s *CategoryStore) List() []models.Category {
	s.mu.RLock()
	out := make([]models.Category, len(s.cats))
	copy(out, s.cats)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Get returns a category by id.
func (s *CategoryStore) Get(id int64) (models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.cats[i], nil
	}
	return models.Category{}, ErrNotFound
}

// FindBySlug returns the category whose normalized slug equals slug.Normalize(sl).
func (s *CategoryStore) FindBySlug(sl string) (models.Category, error) {
	want := slug.Normalize(sl)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.cats {
		if slug.Normalize(c.Slug) == want {
			return c, nil
		}
	}
	return models.Category{}, ErrNotFound
}

// Count returns the number of categories.
func (s *CategoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cats)
}

// Create validates f, derives the slug, rejects duplicates, prepends the new
// category and persists the collection.
func (s *CategoryStore) Create(ctx context.Context, f models.CategoryFields) (models.Category, error) {
	name, sl, color, err := validateCategory(f)
	if err != nil {
		return models.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slugTaken(sl, 0, false) {
		return models.Category{}, &DuplicateSlugError{Slug: sl}
	}

	now := s.now()
	c := models.Category{
		ID:        s.ids.next(now),
		Name:      name,
		Slug:      sl,
		Color:     color,
		CreatedAt: now,
	}
	s.cats = append([]models.Category{c}, s.cats...)
	s.persist(ctx)
	return c, nil
}

// Update replaces name, slug and color of category id. The duplicate check
// ignores the category being edited.
func (s *CategoryStore) Update(ctx context.Context, id int64, f models.CategoryFields) (models.Category, error) {
	name, sl, color, err := validateCategory(f)
	if err != nil {
		return models.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Category{}, ErrNotFound
	}
	if s.slugTaken(sl, id, true) {
		return models.Category{}, &DuplicateSlugError{Slug: sl}
	}

	s.cats[i].Name = name
	s.cats[i].Slug = sl
	s.cats[i].Color = color
	s.persist(ctx)
	return s.cats[i], nil
}

// Delete removes category id if present and reports whether it existed.
func (s *CategoryStore) Delete(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i >= 0 {
		s.cats = append(s.cats[:i:i], s.cats[i+1:]...)
	}
	s.persist(ctx)
	return i >= 0
}

// slugTaken must be called with s.mu held. When exclude is true the
// category with id excludeID is ignored.
func (s *CategoryStore) slugTaken(sl string, excludeID int64, exclude bool) bool {
	want := slug.Normalize(sl)
	for _, c := range s.cats {
		if exclude && c.ID == excludeID {
			continue
		}
		if slug.Normalize(c.Slug) == want {
			return true
		}
	}
	return false
}

// indexOf must be called with s.mu held.
func (s *CategoryStore) indexOf(id int64) int {
	for i, c := range s.cats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with s.mu held.
func (s *CategoryStore) persist(ctx context.Context) {
	_ = s.kv.Save(ctx, CategoriesKey, s.cats)
}

// validateCategory trims and checks the fields and derives the slug from the
// explicit slug or, when that is blank, from the name.
func validateCategory(f models.CategoryFields) (name, sl, color string, err error) {
	if name, err = requireText("name", f.Name, maxNameLen); err != nil {
		return "", "", "", err
	}

	src := f.Slug
	if strings.TrimSpace(src) == "" {
		src = name
	}
	sl = slug.Generate(src)
	if sl == "" {
		return "", "", "", &ValidationError{Field: "slug", Message: "must not be empty"}
	}
	if utf8.RuneCountInString(sl) > maxSlugLen {
		return "", "", "", &ValidationError{Field: "slug", Message: "too long"}
	}

	color, ok := models.NormalizeColor(f.Color)
	if !ok {
		return "", "", "", &ValidationError{Field: "color", Message: "must be a hex color like #34d399"}
	}
	return name, sl, color, nil
}
