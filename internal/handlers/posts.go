// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"postdesk/internal/models"
)

// ListPosts returns all posts, newest first.
func (a *API) ListPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.posts.List())
}

// GetPost returns one post.
func (a *API) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	p, err := a.posts.Get(id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreatePost creates a post from {title, summary}.
func (a *API) CreatePost(w http.ResponseWriter, r *http.Request) {
	var f models.PostFields
	if !decodeJSON(w, r, &f) {
		return
	}
	p, err := a.posts.Create(r.Context(), f)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	slog.Info("post created", "id", p.ID)
	writeJSON(w, http.StatusCreated, p)
}

// UpdatePost replaces title and summary of a post.
func (a *API) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var f models.PostFields
	if !decodeJSON(w, r, &f) {
		return
	}
	p, err := a.posts.Update(r.Context(), id, f)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	slog.Info("post updated", "id", p.ID)
	writeJSON(w, http.StatusOK, p)
}

// DeletePost removes a post. Deleting a missing id is not an error.
// Open forms editing the post are reset.
func (a *API) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if a.posts.Delete(r.Context(), id) {
		slog.Info("post deleted", "id", id)
	}
	a.previews.Invalidate(id)
	if a.forms != nil {
		a.forms.PostDeleted(id)
	}
	w.WriteHeader(http.StatusNoContent)
}

// PreviewPost renders a post as an HTML fragment.
func (a *API) PreviewPost(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	p, err := a.posts.Get(id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	html, err := a.previews.Render(p)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}
