// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"postdesk/internal/export"
)

// snapshot collects the current dashboard state.
func (a *API) snapshot() export.Snapshot {
	return export.Snapshot{
		ExportedAt: a.now().UTC(),
		Posts:      a.posts.List(),
		Categories: a.cats.List(),
		Settings:   a.settings.Current(),
	}
}

// Export downloads the dashboard in ?format=json|yaml|posts.csv|categories.csv.
func (a *API) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := a.snapshot()
	var buf bytes.Buffer
	if err := export.Write(&buf, format, snap); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.Filename(snap.ExportedAt)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Backup uploads a JSON snapshot to object storage. When the target can
// presign, the response carries a short-lived download link as "url".
func (a *API) Backup(w http.ResponseWriter, r *http.Request) {
	key, err := export.Backup(r.Context(), a.backup, a.snapshot())
	if errors.Is(err, export.ErrBackupDisabled) {
		writeError(w, http.StatusServiceUnavailable, "backup storage is not configured")
		return
	}
	if err != nil {
		slog.Error("backup failed", "error", err)
		writeError(w, http.StatusBadGateway, "backup upload failed")
		return
	}

	resp := map[string]string{"key": key}
	if p, ok := a.backup.(export.Presigner); ok {
		link, err := p.PresignedURL(r.Context(), key, export.LinkTTL)
		if err != nil {
			slog.Warn("backup link unavailable", "key", key, "error", err)
		} else {
			resp["url"] = link
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}
