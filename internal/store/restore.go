// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"postdesk/internal/models"
	"postdesk/internal/slug"
)

// Replace swaps the whole collection for posts, keeping their ids and
// timestamps. Every post is validated first; on error nothing changes.
func (s *PostStore) Replace(ctx context.Context, posts []models.Post) error {
	next := make([]models.Post, 0, len(posts))
	seen := make(map[int64]bool, len(posts))
	for _, p := range posts {
		if seen[p.ID] {
			return &ValidationError{Field: "id", Message: fmt.Sprintf("post id %d appears twice", p.ID)}
		}
		seen[p.ID] = true

		title, summary, err := validatePost(models.PostFields{Title: p.Title, Summary: p.Summary})
		if err != nil {
			return fmt.Errorf("post %d: %w", p.ID, err)
		}
		p.Title, p.Summary = title, summary
		next = append(next, p)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = next
	for _, p := range next {
		s.ids.observe(p.ID)
	}
	s.persist(ctx)
	slog.Info("posts replaced", "count", len(next))
	return nil
}

// Replace swaps the whole collection for cats. Names, slugs and colors are
// validated and slugs must be unique; on error nothing changes.
func (s *CategoryStore) Replace(ctx context.Context, cats []models.Category) error {
	next := make([]models.Category, 0, len(cats))
	seenID := make(map[int64]bool, len(cats))
	seenSlug := make(map[string]bool, len(cats))
	for _, c := range cats {
		if seenID[c.ID] {
			return &ValidationError{Field: "id", Message: fmt.Sprintf("category id %d appears twice", c.ID)}
		}
		seenID[c.ID] = true

		name, sl, color, err := validateCategory(models.CategoryFields{Name: c.Name, Slug: c.Slug, Color: c.Color})
		if err != nil {
			return fmt.Errorf("category %d: %w", c.ID, err)
		}
		key := slug.Normalize(sl)
		if seenSlug[key] {
			return &DuplicateSlugError{Slug: sl}
		}
		seenSlug[key] = true
		c.Name, c.Slug, c.Color = name, sl, color
		next = append(next, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cats = next
	for _, c := range next {
		s.ids.observe(c.ID)
	}
	s.persist(ctx)
	slog.Info("categories replaced", "count", len(next))
	return nil
}

// Replace overwrites the settings with in, applying the same rules as
// Update.
func (s *SettingsStore) Replace(ctx context.Context, in models.Settings) (models.Settings, error) {
	return s.Update(ctx, models.SettingsPatch{
		Theme:       &in.Theme,
		DisplayName: &in.DisplayName,
		FocusText:   &in.FocusText,
	})
}
