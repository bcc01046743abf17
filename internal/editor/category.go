// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"context"
	"sync"

	"postdesk/internal/models"
	"postdesk/internal/slug"
	"postdesk/internal/store"
)

// CategoryState is a snapshot of a CategoryForm.
type CategoryState struct {
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Color      string `json:"color"`
	EditingID  *int64 `json:"editingId"`
	SlugManual bool   `json:"slugManual"`
}

// CategoryPatch carries the fields a client changed. Name is applied before
// Slug, so a patch setting both keeps the explicit slug.
type CategoryPatch struct {
	Name  *string `json:"name,omitempty"`
	Slug  *string `json:"slug,omitempty"`
	Color *string `json:"color,omitempty"`
}

// CategoryForm is the category editor. In create mode the slug follows the
// name until the user types a slug of their own.
type CategoryForm struct {
	mu   sync.Mutex
	cats *store.CategoryStore

	name       string
	slug       string
	color      string
	target     *int64
	slugManual bool
}

// NewCategoryForm returns an empty form in create mode.
func NewCategoryForm(cats *store.CategoryStore) *CategoryForm {
	f := &CategoryForm{cats: cats}
	f.resetLocked()
	return f
}

// State returns a copy of the current form state.
func (f *CategoryForm) State() CategoryState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

func (f *CategoryForm) stateLocked() CategoryState {
	return CategoryState{
		Name:       f.name,
		Slug:       f.slug,
		Color:      f.color,
		EditingID:  cloneID(f.target),
		SlugManual: f.slugManual,
	}
}

// SetName updates the name and, while creating with no manual slug,
// re-derives the slug from it.
func (f *CategoryForm) SetName(name string) CategoryState {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setNameLocked(name)
	return f.stateLocked()
}

func (f *CategoryForm) setNameLocked(name string) {
	f.name = name
	if f.target == nil && !f.slugManual {
		f.slug = slug.Generate(name)
	}
}

// SetSlug sets the slug and stops it from following the name.
func (f *CategoryForm) SetSlug(s string) CategoryState {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slug = s
	f.slugManual = true
	return f.stateLocked()
}

// Apply sets the non-nil fields of p.
func (f *CategoryForm) Apply(p CategoryPatch) CategoryState {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p.Name != nil {
		f.setNameLocked(*p.Name)
	}
	if p.Slug != nil {
		f.slug = *p.Slug
		f.slugManual = true
	}
	if p.Color != nil {
		f.color = *p.Color
	}
	return f.stateLocked()
}

// Edit loads category id into the form.
func (f *CategoryForm) Edit(id int64) (CategoryState, error) {
	c, err := f.cats.Get(id)
	if err != nil {
		return CategoryState{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.name = c.Name
	f.slug = c.Slug
	f.color = c.Color
	f.target = &c.ID
	f.slugManual = false
	return f.stateLocked(), nil
}

// Reset clears the form back to create mode.
func (f *CategoryForm) Reset() CategoryState {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
	return f.stateLocked()
}

func (f *CategoryForm) resetLocked() {
	f.name = ""
	f.slug = ""
	f.color = models.DefaultCategoryColor
	f.target = nil
	f.slugManual = false
}

// Save creates or updates a category and resets the form on success.
func (f *CategoryForm) Save(ctx context.Context) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fields := models.CategoryFields{Name: f.name, Slug: f.slug, Color: f.color}

	var (
		c   models.Category
		err error
	)
	if f.target == nil {
		c, err = f.cats.Create(ctx, fields)
	} else {
		c, err = f.cats.Update(ctx, *f.target, fields)
	}
	if err != nil {
		return models.Category{}, err
	}

	f.resetLocked()
	return c, nil
}

// Delete removes category id and resets the form if it was being edited.
func (f *CategoryForm) Delete(ctx context.Context, id int64) bool {
	existed := f.cats.Delete(ctx, id)
	f.ResetIfTarget(id)
	return existed
}

// ResetIfTarget resets the form when it is editing id. Used when the entity
// is deleted outside this form.
func (f *CategoryForm) ResetIfTarget(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.target == nil || *f.target != id {
		return false
	}
	f.resetLocked()
	return true
}
