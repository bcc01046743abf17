// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"postdesk/internal/models"
	"postdesk/internal/slug"
	"postdesk/internal/store"
)

// ListCategories returns all categories, newest first.
func (a *API) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.cats.List())
}

// GetCategory returns one category.
func (a *API) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	c, err := a.cats.Get(id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateCategory creates a category from {name, slug, color}. A blank slug
// is derived from the name.
func (a *API) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var f models.CategoryFields
	if !decodeJSON(w, r, &f) {
		return
	}
	c, err := a.cats.Create(r.Context(), f)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	slog.Info("category created", "id", c.ID, "slug", c.Slug)
	writeJSON(w, http.StatusCreated, c)
}

// UpdateCategory replaces name, slug and color of a category.
func (a *API) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var f models.CategoryFields
	if !decodeJSON(w, r, &f) {
		return
	}
	c, err := a.cats.Update(r.Context(), id, f)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	slog.Info("category updated", "id", c.ID, "slug", c.Slug)
	writeJSON(w, http.StatusOK, c)
}

// DeleteCategory removes a category. Deleting a missing id is not an error.
func (a *API) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if a.cats.Delete(r.Context(), id) {
		slog.Info("category deleted", "id", id)
	}
	if a.forms != nil {
		a.forms.CategoryDeleted(id)
	}
	w.WriteHeader(http.StatusNoContent)
}

// slugPreview is the response of SlugPreview.
type slugPreview struct {
	Slug      string `json:"slug"`
	Available bool   `json:"available"`
}

// SlugPreview returns the slug that ?name= would get and whether it is free.
func (a *API) SlugPreview(w http.ResponseWriter, r *http.Request) {
	s := slug.Generate(r.URL.Query().Get("name"))
	_, err := a.cats.FindBySlug(s)
	writeJSON(w, http.StatusOK, slugPreview{
		Slug:      s,
		Available: s != "" && errors.Is(err, store.ErrNotFound),
	})
}
