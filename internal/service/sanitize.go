package service

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// htmlSanitizer strips scripts, event handlers and other unsafe markup
// from editor HTML while keeping ordinary formatting.
var htmlSanitizer = bluemonday.UGCPolicy()

// textSanitizer removes all markup.
var textSanitizer = bluemonday.StrictPolicy()

// sanitizeContent cleans stored bodies that are HTML. JSON documents and
// plain text are rendered escaped on read and are kept verbatim.
func sanitizeContent(s string) string {
	if strings.HasPrefix(strings.TrimSpace(s), "<") {
		return htmlSanitizer.Sanitize(s)
	}
	return s
}

// sanitizeText drops any markup from short fields such as summaries.
func sanitizeText(s string) string {
	return strings.TrimSpace(textSanitizer.Sanitize(s))
}
