// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the records managed by the dashboard: blog post
// drafts, categories, the settings profile, and transient AI results.
package models

import "time"

// Post is a blog post draft. Only Title and Summary change after creation.
type Post struct {
	ID        int64     `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Summary   string    `json:"summary" yaml:"summary"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// PostFields holds the mutable fields submitted by the post form.
type PostFields struct {
	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary" yaml:"summary"`
}
