// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
// Turkish letters are transliterated to their closest ASCII form before
// anything outside [a-z0-9] is stripped.
package slug

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, space, or
	// hyphen. \p{Z} covers NBSP and the other Unicode spaces RE2's \s misses.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s\p{Z}-]`)
	// whitespaceRuns matches one or more ASCII or Unicode space characters.
	whitespaceRuns = regexp.MustCompile(`[\s\p{Z}]+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)

	// transliterator maps locale-specific lowercase letters to ASCII.
	// Input is lowercased first, so only lowercase forms are listed.
	transliterator = strings.NewReplacer(
		"ç", "c",
		"ğ", "g",
		"ı", "i",
		"ö", "o",
		"ş", "s",
		"ü", "u",
		"â", "a",
		"î", "i",
		"û", "u",
	)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Ön Yazı: Başlarken!" → "on-yazi-baslarken"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimFunc(s, unicode.IsSpace))
	result = transliterator.Replace(result)
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespaceRuns.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Normalize returns the comparison form of an existing slug. Two slugs
// collide when their normalized forms are equal.
func Normalize(s string) string {
	return Generate(s)
}
