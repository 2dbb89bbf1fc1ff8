// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package richtext converts persisted rich body text of unknown shape into
// renderable HTML and derives plain-text previews from it.
package richtext

import "strings"

// htmlEscaper replaces the five HTML-significant characters in a single pass,
// so ampersands produced by a replacement are never escaped again.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// Escape escapes & < > " and ' for safe inclusion in HTML text and attributes.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// ToParagraphHTML wraps every non-blank line of text in an escaped <p> element.
// Returns an empty string when the text has no non-blank lines.
func ToParagraphHTML(text string) string {
	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = trim(line)
		if line == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(Escape(line))
		sb.WriteString("</p>")
	}
	return sb.String()
}
