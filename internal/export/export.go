// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package export writes point-in-time snapshots of the dashboard as JSON,
// YAML, or CSV.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"postdesk/internal/models"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON          Format = "json"
	FormatYAML          Format = "yaml"
	FormatPostsCSV      Format = "posts.csv"
	FormatCategoriesCSV Format = "categories.csv"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatPostsCSV, FormatCategoriesCSV}

// ParseFormat accepts a format name case-insensitively. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatJSON, nil
	}
	if s == "yml" {
		return FormatYAML, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatPostsCSV, FormatCategoriesCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/json"
	}
}

// Filename returns a download name for a snapshot taken at t.
func (f Format) Filename(t time.Time) string {
	stamp := t.UTC().Format("20060102-150405")
	switch f {
	case FormatPostsCSV:
		return "postdesk-posts-" + stamp + ".csv"
	case FormatCategoriesCSV:
		return "postdesk-categories-" + stamp + ".csv"
	default:
		return "postdesk-" + stamp + "." + string(f)
	}
}

// Snapshot is everything the dashboard holds at one instant.
type Snapshot struct {
	ExportedAt time.Time         `json:"exportedAt" yaml:"exportedAt"`
	Posts      []models.Post     `json:"posts" yaml:"posts"`
	Categories []models.Category `json:"categories" yaml:"categories"`
	Settings   models.Settings   `json:"settings" yaml:"settings"`
}

// Write encodes snap to w in format f.
func Write(w io.Writer, f Format, snap Snapshot) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, snap)
	case FormatYAML:
		return WriteYAML(w, snap)
	case FormatPostsCSV:
		return WritePostsCSV(w, snap.Posts)
	case FormatCategoriesCSV:
		return WriteCategoriesCSV(w, snap.Categories)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// WriteJSON writes snap as indented JSON.
func WriteJSON(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// ReadJSON decodes a snapshot written by WriteJSON. Unknown fields are
// rejected so a non-snapshot document is not mistaken for an empty one.
func ReadJSON(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode json: %w", err)
	}
	return snap, nil
}

// WriteYAML writes snap as YAML.
func WriteYAML(w io.Writer, snap Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
