// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package summary produces short Turkish blog summaries from a post title.
// It asks the configured AI provider when a credential is present and
// degrades to a locally composed summary on any failure, so callers always
// get usable text.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"postdesk/internal/ai"
	"postdesk/internal/models"
)

// Prompt constants sent with every remote request.
const (
	SystemPrompt = "Türkçe, maksimum 3 cümlelik profesyonel blog özeti yaz."
	MaxTokens    = 170
	Temperature  = 0.7

	// DefaultTimeout bounds a single remote call.
	DefaultTimeout = 20 * time.Second
)

// UserPrompt embeds the title in the fixed instruction template.
func UserPrompt(title string) string {
	return fmt.Sprintf("\"%s\" başlığı için blog özeti yaz.", title)
}

// Completer is the remote text service. ai.Registry satisfies it.
type Completer interface {
	Generate(ctx context.Context, req ai.Request) (string, error)

	// Configured reports whether a credential is available. When false
	// no network call is attempted.
	Configured() bool
}

// Options tunes a Generator. The zero value is usable.
type Options struct {
	// Timeout bounds the remote call. Zero means DefaultTimeout.
	Timeout time.Duration

	// EmptyAsFallback reports source=fallback when the service succeeds but
	// returns no text. By default such results are tagged remote.
	EmptyAsFallback bool

	// Picker selects fallback sentences. Nil uses math/rand/v2.
	Picker Picker

	// OnRemoteFailure, if set, is called after an attempted remote call fails.
	OnRemoteFailure func(title string, err error)
}

// Generator turns titles into summaries. It is safe for concurrent use.
type Generator struct {
	completer Completer
	opts      Options
}

// New creates a Generator. completer may be nil, which behaves like an
// unconfigured provider.
func New(completer Completer, opts Options) *Generator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Picker == nil {
		opts.Picker = randPicker{}
	}
	return &Generator{completer: completer, opts: opts}
}

// Remote reports whether Generate will attempt a network call.
func (g *Generator) Remote() bool {
	return g.completer != nil && g.completer.Configured()
}

// Generate returns a summary for title. It never fails: any problem with the
// remote path yields a fallback summary, and the failure is logged.
func (g *Generator) Generate(ctx context.Context, title string) models.GenerationResult {
	title = strings.TrimSpace(title)

	if !g.Remote() {
		return g.fallback(title)
	}

	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	temp := Temperature
	text, err := g.completer.Generate(ctx, ai.Request{
		SystemPrompt: SystemPrompt,
		UserPrompt:   UserPrompt(title),
		MaxTokens:    MaxTokens,
		Temperature:  &temp,
	})
	if err != nil {
		slog.Warn("ai summary failed, using fallback",
			"title", title,
			"rate_limited", ai.IsRateLimited(err),
			"error", err,
		)
		if g.opts.OnRemoteFailure != nil {
			g.opts.OnRemoteFailure(title, err)
		}
		return g.fallback(title)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		slog.Warn("ai summary returned empty text", "title", title, "empty_as_fallback", g.opts.EmptyAsFallback)
		source := models.SourceRemote
		if g.opts.EmptyAsFallback {
			source = models.SourceFallback
		}
		return models.GenerationResult{Summary: Fallback(title, g.opts.Picker), Source: source}
	}

	return models.GenerationResult{Summary: text, Source: models.SourceRemote}
}

func (g *Generator) fallback(title string) models.GenerationResult {
	return models.GenerationResult{
		Summary: Fallback(title, g.opts.Picker),
		Source:  models.SourceFallback,
	}
}
