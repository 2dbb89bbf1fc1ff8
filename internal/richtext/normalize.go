// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package richtext

import (
	"encoding/json"
	"strings"
	"unicode"
)

// Kind identifies the shape a persisted content value was classified as.
type Kind int

// Content kinds.
const (
	// KindEmpty carries no usable text; it renders as the fallback.
	KindEmpty Kind = iota
	// KindHTML is markup stored as-is and rendered without escaping.
	KindHTML
	// KindDocument is text extracted from an editor document tree.
	KindDocument
	// KindPlainText is raw text that is escaped and wrapped in paragraphs.
	KindPlainText
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindHTML:
		return "html"
	case KindDocument:
		return "document"
	case KindPlainText:
		return "plain_text"
	default:
		return "empty"
	}
}

// Content is a persisted rich-content value classified into one of its
// historical storage shapes.
type Content struct {
	Kind  Kind
	Value string
}

// contentKeys are the object fields that hold a nested content string,
// in lookup order. Older rows used "html" and "notes".
var contentKeys = []string{"content", "html", "notes"}

// Parse classifies a stored content value. Accepted inputs are strings
// (HTML, JSON-encoded objects or plain text), decoded JSON objects and nil.
// Anything else classifies as KindEmpty.
func Parse(value any) Content {
	switch v := value.(type) {
	case string:
		return parseString(v)
	case *string:
		if v == nil {
			return Content{}
		}
		return parseString(*v)
	case []byte:
		return parseString(string(v))
	case json.RawMessage:
		return parseString(string(v))
	case map[string]any:
		return parseObject(v)
	default:
		return Content{}
	}
}

func parseString(s string) Content {
	trimmed := trim(s)
	if trimmed == "" {
		return Content{}
	}
	if strings.HasPrefix(trimmed, "<") {
		return Content{Kind: KindHTML, Value: trimmed}
	}

	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
		// A JSON value without usable text still renders the raw input.
		if nested := Parse(decoded); nested.Render("") != "" {
			return nested
		}
	}

	return Content{Kind: KindPlainText, Value: trimmed}
}

func parseObject(obj map[string]any) Content {
	for _, key := range contentKeys {
		if s, ok := obj[key].(string); ok {
			return parseString(s)
		}
	}

	if text := extractText(obj); text != "" {
		return Content{Kind: KindDocument, Value: text}
	}
	return Content{}
}

// extractText concatenates the "text" field of a document node with the text
// of every node in its "content" array, depth first.
func extractText(node any) string {
	obj, ok := node.(map[string]any)
	if !ok {
		return ""
	}

	text, _ := obj["text"].(string)

	var children string
	if items, ok := obj["content"].([]any); ok {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = extractText(item)
		}
		children = strings.Join(parts, " ")
	}

	return trim(text + " " + children)
}

// Render returns the HTML for the content, or fallback when the content
// produces no markup.
func (c Content) Render(fallback string) string {
	switch c.Kind {
	case KindHTML:
		if c.Value != "" {
			return c.Value
		}
	case KindDocument, KindPlainText:
		if html := ToParagraphHTML(c.Value); html != "" {
			return html
		}
	}
	return fallback
}

// Normalize converts a stored content value of unknown shape into HTML.
// It never panics; values that cannot be interpreted yield fallback.
func Normalize(value any, fallback string) string {
	return Parse(value).Render(fallback)
}

func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// isSpace matches the whitespace set browsers strip, which adds the byte
// order mark to Unicode White_Space.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
