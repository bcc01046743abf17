// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor holds the transient state of the post and category edit
// forms: field copies, the entity being edited, and the guard around the
// one slow operation (remote summary generation).
package editor

import (
	"context"
	"errors"

	"postdesk/internal/models"
)

var (
	// ErrGenerationInFlight is returned when a summary is requested while
	// the same form is still waiting for a previous one.
	ErrGenerationInFlight = errors.New("editor: summary generation already in progress")

	// ErrStaleResult is returned when a summary arrives after the form was
	// reset or retargeted. The result is not applied.
	ErrStaleResult = errors.New("editor: form changed during generation, result discarded")

	// ErrUnknownForm is returned by Manager for missing or expired sessions.
	ErrUnknownForm = errors.New("editor: unknown form session")
)

// SummaryGenerator produces a summary for a title. summary.Generator
// satisfies it.
type SummaryGenerator interface {
	Generate(ctx context.Context, title string) models.GenerationResult
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
