package cache

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Kind names a group of cached public read models.
type Kind string

// Cached kinds. Home aggregates every other kind.
const (
	KindHome      Kind = "home"
	KindArticles  Kind = "articles"
	KindBlogs     Kind = "blogs"
	KindEvents    Kind = "events"
	KindMagazines Kind = "magazines"
	KindPress     Kind = "press"
	KindFlipbook  Kind = "flipbook"
)

// Key builds a cache key for kind from its parts. Parts are escaped so
// user input cannot produce a key under another kind.
func Key(kind Kind, parts ...string) string {
	var b strings.Builder
	b.WriteString("public:")
	b.WriteString(string(kind))
	b.WriteByte(':')
	for i, p := range parts {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(url.QueryEscape(p))
	}
	return b.String()
}

// FlipbookKey is the key of the resolved page list for a PDF source.
func FlipbookKey(source string) string {
	return Key(KindFlipbook, source)
}

// Invalidate drops every public entry of kind and the home page.
func Invalidate(ctx context.Context, c Cacher, kind Kind) error {
	if err := c.DeleteByPrefix(ctx, Key(kind)); err != nil {
		return fmt.Errorf("invalidating %s: %w", kind, err)
	}
	if kind == KindHome {
		return nil
	}
	if err := c.DeleteByPrefix(ctx, Key(KindHome)); err != nil {
		return fmt.Errorf("invalidating home: %w", err)
	}
	return nil
}
