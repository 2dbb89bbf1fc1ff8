package model

import "strings"

// Status is the editorial state of a content row.
type Status string

// Content statuses.
const (
	StatusDraft     Status = "DRAFT"
	StatusReview    Status = "REVIEW"
	StatusPublished Status = "PUBLISHED"
	StatusArchived  Status = "ARCHIVED"
)

// Statuses lists every valid status in editorial order.
var Statuses = []Status{StatusDraft, StatusReview, StatusPublished, StatusArchived}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusReview, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ParseStatus upper-cases v and returns the status it names. Unknown or
// empty values return def.
func ParseStatus(v string, def Status) Status {
	s := Status(strings.ToUpper(strings.TrimSpace(v)))
	if s.Valid() {
		return s
	}
	return def
}
