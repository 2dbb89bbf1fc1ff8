package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/store"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "logging.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))
	return db
}

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func auditLogs(t *testing.T, db *sql.DB) []store.AuditLog {
	t.Helper()
	logs, err := store.New(db).ListAuditLogs(context.Background(), 100)
	require.NoError(t, err)
	return logs
}

func TestAuditLogHandler_PersistsWarningsAndErrors(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewAuditLogHandler(discardHandler{}, db))

	logger.Info("server started")
	logger.Warn("flipbook probe cancelled", "source", "https://res.cloudinary.com/x.pdf")
	logger.Error("database connection failed", "port", 5432)

	logs := auditLogs(t, db)
	require.Len(t, logs, 2)

	byMessage := map[string]store.AuditLog{}
	for _, l := range logs {
		byMessage[l.Message] = l
	}

	warn := byMessage["flipbook probe cancelled"]
	assert.Equal(t, model.EventLevelWarning, warn.Level)
	assert.Equal(t, model.EventCategoryFlipbook, warn.Category)

	errLog := byMessage["database connection failed"]
	assert.Equal(t, model.EventLevelError, errLog.Level)
	assert.Equal(t, model.EventCategorySystem, errLog.Category)

	var meta map[string]string
	require.NoError(t, json.Unmarshal([]byte(errLog.Metadata), &meta))
	assert.Equal(t, "5432", meta["port"])
}

func TestAuditLogHandler_CustomLevel(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewAuditLogHandlerWithLevel(discardHandler{}, db, slog.LevelError))

	logger.Warn("cache miss storm")
	logger.Error("cache unavailable")

	logs := auditLogs(t, db)
	require.Len(t, logs, 1)
	assert.Equal(t, "cache unavailable", logs[0].Message)
	assert.Equal(t, model.EventCategoryCache, logs[0].Category)
}

func TestAuditLogHandler_AttrsAndGroups(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewAuditLogHandler(discardHandler{}, db)).
		With("request_id", "abc").
		WithGroup("upload")

	logger.Warn("something odd", "category", model.EventCategoryMedia, "size", 12)

	logs := auditLogs(t, db)
	require.Len(t, logs, 1)
	assert.Equal(t, model.EventCategoryMedia, logs[0].Category)

	var meta map[string]string
	require.NoError(t, json.Unmarshal([]byte(logs[0].Metadata), &meta))
	assert.Equal(t, "abc", meta["request_id"])
	assert.Equal(t, "12", meta["upload.size"])
	_, hasCategory := meta["category"]
	assert.False(t, hasCategory)
}

func TestCategory(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"login failed", model.EventCategoryAuth},
		{"session expired", model.EventCategoryAuth},
		{"cloudinary upload failed", model.EventCategoryMedia},
		{"magazine issue not found", model.EventCategoryContent},
		{"redis cache error", model.EventCategoryCache},
		{"shutting down", model.EventCategorySystem},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, category(tt.msg, nil), tt.msg)
	}
}

func TestMetadata(t *testing.T) {
	assert.Equal(t, "{}", metadata(nil))
	assert.Equal(t, "{}", metadata([]slog.Attr{slog.String("category", "auth")}))

	got := metadata([]slog.Attr{
		slog.String("quote", `say "hi"`),
		slog.Group("req", slog.String("method", "GET")),
	})
	var meta map[string]string
	require.NoError(t, json.Unmarshal([]byte(got), &meta))
	assert.Equal(t, `say "hi"`, meta["quote"])
	assert.Equal(t, "GET", meta["req.method"])
}
