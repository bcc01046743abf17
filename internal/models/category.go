// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"regexp"
	"strings"
	"time"
)

// DefaultCategoryColor is used when a category is saved without a color.
const DefaultCategoryColor = "#34d399"

// hexColor matches #rgb and #rrggbb.
var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Category groups posts. Slug is unique across the collection.
type Category struct {
	ID        int64     `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Slug      string    `json:"slug" yaml:"slug"`
	Color     string    `json:"color" yaml:"color"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// CategoryFields holds the mutable fields submitted by the category form.
// An empty Slug means "derive it from Name".
type CategoryFields struct {
	Name  string `json:"name" yaml:"name"`
	Slug  string `json:"slug" yaml:"slug"`
	Color string `json:"color" yaml:"color"`
}

// NormalizeColor returns the lower-cased color, or the default when empty.
// The second return value is false when the color is not a hex color.
func NormalizeColor(c string) (string, bool) {
	c = strings.TrimSpace(c)
	if c == "" {
		return DefaultCategoryColor, true
	}
	if !hexColor.MatchString(c) {
		return "", false
	}
	return strings.ToLower(c), true
}
