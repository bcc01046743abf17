// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"postdesk/internal/models"
)

// GetSettings returns the current profile.
func (a *API) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.settings.Current())
}

// PatchSettings merges the supplied fields into the profile.
func (a *API) PatchSettings(w http.ResponseWriter, r *http.Request) {
	var p models.SettingsPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	s, err := a.settings.Update(r.Context(), p)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// ResetSettings restores the default profile.
func (a *API) ResetSettings(w http.ResponseWriter, r *http.Request) {
	s := a.settings.ResetToDefault(r.Context())
	slog.Info("settings reset to defaults")
	writeJSON(w, http.StatusOK, s)
}

// ToggleTheme switches between dark and light.
func (a *API) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.settings.ToggleTheme(r.Context()))
}
