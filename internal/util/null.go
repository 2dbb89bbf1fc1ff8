package util

import (
	"database/sql"
	"strings"
	"time"
)

// NullString trims s and returns a NULL for the empty string.
func NullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// NullTimeFromPtr converts an optional time into a nullable UTC column value.
func NullTimeFromPtr(t *time.Time) sql.NullTime {
	if t == nil || t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// StringPtr returns nil for NULL, else a pointer to the value.
func StringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// TimePtr returns nil for NULL, else a pointer to the value.
func TimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
