// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache.go keeps rendered post previews in memory. Entries are keyed by post
// ID and remember the title and summary they were rendered from, so an edit
// produces a miss without explicit invalidation.
package markdown

import (
	"log/slog"
	"sync"

	"postdesk/internal/models"
)

// previewEntry is one rendered preview and the fields it came from.
type previewEntry struct {
	title   string
	summary string
	html    string
}

// PreviewCache is a concurrency-safe cache of PostPreview output.
type PreviewCache struct {
	mu      sync.RWMutex
	entries map[int64]previewEntry
}

// NewPreviewCache creates an empty preview cache.
func NewPreviewCache() *PreviewCache {
	return &PreviewCache{entries: make(map[int64]previewEntry)}
}

// Render returns the cached preview for p, rendering and storing it on a miss
// or when the post changed since it was cached.
func (c *PreviewCache) Render(p models.Post) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[p.ID]
	c.mu.RUnlock()
	if ok && e.title == p.Title && e.summary == p.Summary {
		return e.html, nil
	}

	html, err := PostPreview(p)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[p.ID] = previewEntry{title: p.Title, summary: p.Summary, html: html}
	c.mu.Unlock()

	slog.Debug("preview cached", "post_id", p.ID, "size", c.Len())
	return html, nil
}

// Invalidate drops the preview of post id. Called when the post is deleted.
func (c *PreviewCache) Invalidate(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Len returns the number of cached previews.
func (c *PreviewCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
