// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// GenerationSource tells which path produced a summary.
type GenerationSource string

const (
	SourceRemote   GenerationSource = "remote"
	SourceFallback GenerationSource = "fallback"
)

// GenerationResult is the outcome of a summary request. It is never persisted.
type GenerationResult struct {
	Summary string           `json:"summary" yaml:"summary"`
	Source  GenerationSource `json:"source" yaml:"source"`
}
