// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers for the postdesk API.
// Handlers receive their dependencies through the API struct.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"postdesk/internal/ai"
	"postdesk/internal/editor"
	"postdesk/internal/export"
	"postdesk/internal/markdown"
	"postdesk/internal/models"
	"postdesk/internal/store"
)

// maxBodySize caps JSON request bodies.
const maxBodySize = 64 << 10

// Summarizer is the summary generator used by the AI endpoints.
type Summarizer interface {
	Generate(ctx context.Context, title string) models.GenerationResult
	Remote() bool
}

// Deps lists everything the API needs. Registry and Backup may be nil.
type Deps struct {
	Posts      *store.PostStore
	Categories *store.CategoryStore
	Settings   *store.SettingsStore
	Summarizer Summarizer
	Forms      *editor.Manager
	Registry   *ai.Registry
	Backup     export.Uploader
	Now        func() time.Time
}

// API groups all HTTP handlers and their dependencies.
type API struct {
	posts    *store.PostStore
	cats     *store.CategoryStore
	settings *store.SettingsStore
	summary  Summarizer
	forms    *editor.Manager
	registry *ai.Registry
	backup   export.Uploader
	previews *markdown.PreviewCache
	now      func() time.Time
}

// New creates the API handler group.
func New(d Deps) *API {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &API{
		posts:    d.Posts,
		cats:     d.Categories,
		settings: d.Settings,
		summary:  d.Summarizer,
		forms:    d.Forms,
		registry: d.Registry,
		backup:   d.Backup,
		previews: markdown.NewPreviewCache(),
		now:      now,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError writes {"error": msg} with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeDomainError maps store and editor errors to HTTP status codes.
// Anything unrecognised is logged and reported as 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve  *store.ValidationError
		dup *store.DuplicateSlugError
	)
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: ve.Error(), Field: ve.Field})
	case errors.As(err, &dup):
		writeJSON(w, http.StatusConflict, errorBody{Error: dup.Error(), Field: "slug"})
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, editor.ErrUnknownForm):
		writeError(w, http.StatusNotFound, "form session not found or expired")
	case errors.Is(err, editor.ErrGenerationInFlight), errors.Is(err, editor.ErrStaleResult):
		writeError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads a size-limited JSON body into dst. An empty body leaves
// dst untouched. On failure it writes a 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// idParam parses the {id} URL parameter. On failure it writes a 400.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
