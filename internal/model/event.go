package model

import "time"

// Audit log levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Audit log categories
const (
	EventCategoryAuth     = "auth"
	EventCategoryContent  = "content"
	EventCategoryMedia    = "media"
	EventCategoryFlipbook = "flipbook"
	EventCategorySystem   = "system"
	EventCategoryCache    = "cache"
)

// AuditEntry is a persisted warning or error from the application log.
type AuditEntry struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"` // JSON object
	CreatedAt time.Time `json:"createdAt"`
}
