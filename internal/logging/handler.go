// Package logging provides a slog handler that also persists warnings and
// errors to the audit_log table so admins can review them later.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/store"
)

// writeTimeout bounds a single audit row insert.
const writeTimeout = 2 * time.Second

// AuditLogHandler is a slog.Handler that wraps another handler and also
// writes records at or above its level to the audit log.
type AuditLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level  // Minimum level to persist (default: WARN)
	attrs   []slog.Attr // Attributes added through WithAttrs
	group   string      // Dotted group prefix for attribute keys
}

// NewAuditLogHandler wraps inner. Records at WARN and above are persisted.
func NewAuditLogHandler(inner slog.Handler, db *sql.DB) *AuditLogHandler {
	return NewAuditLogHandlerWithLevel(inner, db, slog.LevelWarn)
}

// NewAuditLogHandlerWithLevel wraps inner with a custom persistence threshold.
func NewAuditLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *AuditLogHandler {
	return &AuditLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *AuditLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *AuditLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.persist(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *AuditLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	c.inner = h.inner.WithAttrs(attrs)
	for _, a := range attrs {
		c.attrs = append(c.attrs, slog.Attr{Key: h.group + a.Key, Value: a.Value})
	}
	return c
}

// WithGroup implements slog.Handler.
func (h *AuditLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.inner = h.inner.WithGroup(name)
	c.group = h.group + name + "."
	return c
}

func (h *AuditLogHandler) clone() *AuditLogHandler {
	return &AuditLogHandler{
		inner:   h.inner,
		queries: h.queries,
		level:   h.level,
		attrs:   append([]slog.Attr(nil), h.attrs...),
		group:   h.group,
	}
}

// persist writes r to the audit log. It runs detached from the request
// context so cancelled requests still leave a trace. Failures are dropped;
// logging them here would recurse.
func (h *AuditLogHandler) persist(r slog.Record) {
	attrs := append([]slog.Attr(nil), h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, slog.Attr{Key: h.group + a.Key, Value: a.Value})
		return true
	})

	created := r.Time
	if created.IsZero() {
		created = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	_, _ = h.queries.CreateAuditLog(ctx, store.CreateAuditLogParams{
		Level:     levelName(r.Level),
		Category:  category(r.Message, attrs),
		Message:   r.Message,
		Metadata:  metadata(attrs),
		CreatedAt: created.UTC(),
	})
}

// levelName converts a slog.Level to an audit log level.
func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// category uses an explicit "category" attribute, else infers one from the
// message.
func category(message string, attrs []slog.Attr) string {
	for _, a := range attrs {
		if isCategoryKey(a.Key) {
			if v := a.Value.String(); v != "" {
				return v
			}
		}
	}

	msg := strings.ToLower(message)
	switch {
	case containsAny(msg, "auth", "login", "logout", "session"):
		return model.EventCategoryAuth
	case containsAny(msg, "flipbook", "probe"):
		return model.EventCategoryFlipbook
	case containsAny(msg, "upload", "cloudinary", "image"):
		return model.EventCategoryMedia
	case containsAny(msg, "article", "blog", "event", "magazine", "press", "tag", "categor"):
		return model.EventCategoryContent
	case strings.Contains(msg, "cache"):
		return model.EventCategoryCache
	default:
		return model.EventCategorySystem
	}
}

func isCategoryKey(key string) bool {
	return key == "category" || strings.HasSuffix(key, ".category")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// metadata encodes every attribute except the category as a flat JSON object
// of strings.
func metadata(attrs []slog.Attr) string {
	fields := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if isCategoryKey(a.Key) {
			continue
		}
		addAttr(fields, "", a)
	}
	if len(fields) == 0 {
		return "{}"
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func addAttr(fields map[string]string, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range v.Group() {
			addAttr(fields, p, ga)
		}
		return
	}
	fields[prefix+a.Key] = v.String()
}
