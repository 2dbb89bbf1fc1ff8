// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds small helpers shared by the service and handler layers:
// slugs, nullable column values and upload filenames.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonSlugRun matches every run of characters outside [a-z0-9].
	nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)
	// slugPattern is the accepted shape of a content slug.
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Slugify converts s to lowercase ASCII words joined by single hyphens.
// Accents are stripped and non-Latin scripts are transliterated, so
// "Über München" and "Йога" both give usable slugs.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = unidecode.Unidecode(result)
	result = strings.ToLower(strings.TrimSpace(result))
	result = nonSlugRun.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValidSlug reports whether s is lowercase alphanumeric words joined by
// single hyphens.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// SlugPattern exposes the slug expression for validators.
func SlugPattern() *regexp.Regexp {
	return slugPattern
}
