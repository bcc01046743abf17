// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"postdesk/internal/store"
)

// summaryRequest is the body of GenerateSummary.
type summaryRequest struct {
	Title string `json:"title"`
}

// GenerateSummary returns a summary for {title}. It always answers 200 with
// either a remote or a fallback summary once the title passes the post
// title rules.
func (a *API) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	title, err := store.SummaryTitle(req.Title)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.summary.Generate(r.Context(), title))
}

// aiStatus describes the summary service configuration. Keys are never
// exposed.
type aiStatus struct {
	Active    string   `json:"active"`
	Available []string `json:"available"`
	Remote    bool     `json:"remote"`
}

func (a *API) aiStatus() aiStatus {
	st := aiStatus{Available: []string{}, Remote: a.summary != nil && a.summary.Remote()}
	if a.registry != nil {
		st.Active = a.registry.ActiveName()
		st.Available = a.registry.Available()
	}
	return st
}

// AIStatus reports the active provider and whether remote calls happen.
func (a *API) AIStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.aiStatus())
}

// SetAIProvider switches the active provider at runtime from {provider}.
func (a *API) SetAIProvider(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider string `json:"provider"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	name := strings.TrimSpace(req.Provider)
	if name == "" {
		writeDomainError(w, r, &store.ValidationError{Field: "provider", Message: "no provider specified"})
		return
	}
	if a.registry == nil {
		writeError(w, http.StatusServiceUnavailable, "no AI providers configured")
		return
	}
	if !a.registry.HasProvider(name) {
		slog.Warn("ai provider not available", "provider", name)
		writeDomainError(w, r, &store.ValidationError{
			Field:   "provider",
			Message: fmt.Sprintf("cannot switch to %q: provider not available (no API key configured)", name),
		})
		return
	}
	if err := a.registry.SetActive(name); err != nil {
		writeDomainError(w, r, err)
		return
	}
	slog.Info("ai provider switched", "provider", name)
	writeJSON(w, http.StatusOK, a.aiStatus())
}
