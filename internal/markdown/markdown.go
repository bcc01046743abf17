// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown renders post summaries as HTML using goldmark. Summaries
// come from users and from a remote text service, so raw HTML in the source
// is never passed through.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"postdesk/internal/models"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,         // tables, strikethrough, autolinks, task lists
		extension.Typographer, // smart quotes and dashes
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
			highlighting.WithFormatOptions(),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(), // summaries are typed as plain lines
	),
)

// ToHTML converts Markdown source into HTML. Raw HTML in the source is
// replaced with an omission marker by goldmark's safe renderer.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// PostPreview renders a post as a level-two heading followed by its summary.
func PostPreview(p models.Post) (string, error) {
	var src strings.Builder
	src.WriteString("## ")
	src.WriteString(strings.TrimSpace(strings.ReplaceAll(p.Title, "\n", " ")))
	src.WriteString("\n\n")
	src.WriteString(p.Summary)
	return ToHTML(src.String())
}
