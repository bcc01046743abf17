// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"postdesk/internal/models"
)

// WritePostsCSV writes one header row and one row per post.
func WritePostsCSV(w io.Writer, posts []models.Post) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"ID", "Title", "Summary", "Created"}); err != nil {
		return err
	}
	for _, p := range posts {
		row := []string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			p.Summary,
			p.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCategoriesCSV writes one header row and one row per category.
func WriteCategoriesCSV(w io.Writer, cats []models.Category) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"ID", "Name", "Slug", "Color", "Created"}); err != nil {
		return err
	}
	for _, c := range cats {
		row := []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Slug,
			c.Color,
			c.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
