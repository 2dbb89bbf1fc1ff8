// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package richtext

import (
	"regexp"
	"strings"
)

// DefaultSnippetLength is the preview length used for list cards.
const DefaultSnippetLength = 140

var (
	// tagPattern matches any markup tag.
	tagPattern = regexp.MustCompile(`<[^>]*>`)
	// whitespacePattern matches runs of ASCII and Unicode separators.
	whitespacePattern = regexp.MustCompile(`[\s\x{0B}\p{Z}\x{FEFF}]+`)
)

// Snippet strips markup from html and returns at most max characters of its
// text followed by "..." when it had to be cut. The cut is not word-aware.
func Snippet(html string, max int) string {
	if html == "" {
		return ""
	}

	text := tagPattern.ReplaceAllString(html, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = trim(text)
	if text == "" {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max < 0 {
		max = 0
	}

	return strings.TrimRightFunc(string(runes[:max]), isSpace) + "..."
}
