// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"

	"postdesk/internal/models"
)

func TestNewCategoryStoreSeeds(t *testing.T) {
	s := NewCategoryStore(context.Background(), mustKV(t))
	if s.Count() != 3 {
		t.Fatalf("Count = %d, want 3", s.Count())
	}
	c, err := s.FindBySlug("kariyer")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if c.Color != "#a78bfa" {
		t.Errorf("Color = %q", c.Color)
	}
}

func TestCategoryCreateDerivesSlug(t *testing.T) {
	ctx := context.Background()
	s := NewCategoryStore(ctx, mustKV(t))

	tests := []struct {
		name   string
		fields models.CategoryFields
		slug   string
		color  string
	}{
		{"slug from name", models.CategoryFields{Name: "Çalışma Notları"}, "calisma-notlari", models.DefaultCategoryColor},
		{"explicit slug wins", models.CategoryFields{Name: "Go", Slug: "Golang Tips", Color: "#FFAA00"}, "golang-tips", "#ffaa00"},
		{"blank slug uses name", models.CategoryFields{Name: "Design", Slug: "   "}, "design", models.DefaultCategoryColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := s.Create(ctx, tt.fields)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if c.Slug != tt.slug {
				t.Errorf("Slug = %q, want %q", c.Slug, tt.slug)
			}
			if c.Color != tt.color {
				t.Errorf("Color = %q, want %q", c.Color, tt.color)
			}
		})
	}
}

func TestCategoryDuplicateSlugRejected(t *testing.T) {
	ctx := context.Background()
	s := NewCategoryStore(ctx, mustKV(t))

	first, err := s.Create(ctx, models.CategoryFields{Name: "Ön Yazı"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.Slug != "on-yazi" {
		t.Fatalf("Slug = %q, want on-yazi", first.Slug)
	}
	before := s.List()

	_, err = s.Create(ctx, models.CategoryFields{Name: "On Yazi"})
	var dup *DuplicateSlugError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateSlugError, got %v", err)
	}
	if dup.Slug != "on-yazi" {
		t.Errorf("dup.Slug = %q", dup.Slug)
	}

	after := s.List()
	if len(after) != len(before) {
		t.Fatalf("collection changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("entry %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestCategoryUpdateSlugRules(t *testing.T) {
	ctx := context.Background()
	s := NewCategoryStore(ctx, mustKV(t))
	ai, _ := s.FindBySlug("ai")

	// Keeping its own slug is fine.
	upd, err := s.Update(ctx, ai.ID, models.CategoryFields{Name: "AI & ML", Slug: "ai"})
	if err != nil {
		t.Fatalf("Update own slug: %v", err)
	}
	if upd.ID != ai.ID || !upd.CreatedAt.Equal(ai.CreatedAt) {
		t.Errorf("identity changed: %+v -> %+v", ai, upd)
	}
	if upd.Name != "AI & ML" {
		t.Errorf("Name = %q", upd.Name)
	}

	// Taking another category's slug is not.
	_, err = s.Update(ctx, ai.ID, models.CategoryFields{Name: "AI", Slug: "Kariyer"})
	var dup *DuplicateSlugError
	if !errors.As(err, &dup) {
		t.Errorf("expected DuplicateSlugError, got %v", err)
	}

	if _, err := s.Update(ctx, 999, models.CategoryFields{Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update unknown id err = %v", err)
	}
}

func TestCategoryValidation(t *testing.T) {
	ctx := context.Background()
	s := NewCategoryStore(ctx, mustKV(t))

	tests := []struct {
		name   string
		fields models.CategoryFields
		field  string
	}{
		{"blank name", models.CategoryFields{Name: "  "}, "name"},
		{"slug strips to nothing", models.CategoryFields{Name: "Valid", Slug: "!!!"}, "slug"},
		{"name strips to nothing", models.CategoryFields{Name: "???"}, "slug"},
		{"bad color", models.CategoryFields{Name: "Colors", Color: "blue"}, "color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(ctx, tt.fields)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
	if s.Count() != 3 {
		t.Errorf("Count = %d after failed creates, want 3", s.Count())
	}
}

func TestCategoryDeleteAndReload(t *testing.T) {
	ctx := context.Background()
	kvs := mustKV(t)
	s := NewCategoryStore(ctx, kvs)
	fe, _ := s.FindBySlug("front-end")

	if !s.Delete(ctx, fe.ID) {
		t.Fatal("Delete returned false")
	}
	if _, err := s.FindBySlug("front-end"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindBySlug after delete err = %v", err)
	}

	reloaded := NewCategoryStore(ctx, kvs)
	if reloaded.Count() != 2 {
		t.Errorf("Count after reload = %d, want 2", reloaded.Count())
	}

	// The freed slug can be reused.
	if _, err := reloaded.Create(ctx, models.CategoryFields{Name: "Front End"}); err != nil {
		t.Errorf("reuse of deleted slug: %v", err)
	}
}
