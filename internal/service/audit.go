// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/store"
)

// AuditService records and reads the audit log.
type AuditService struct {
	queries *store.Queries
	now     func() time.Time
}

// NewAuditService creates a new AuditService.
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{
		queries: store.New(db),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Record writes an entry directly, bypassing the log level filter of the
// slog audit handler. Used for sign-in and sign-out.
func (s *AuditService) Record(ctx context.Context, level, category, message string, metadata map[string]any) error {
	metadataJSON := "{}"
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	_, err := s.queries.CreateAuditLog(ctx, store.CreateAuditLogParams{
		Level:     level,
		Category:  category,
		Message:   message,
		Metadata:  metadataJSON,
		CreatedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("writing audit entry: %w", err)
	}
	return nil
}

// RecordAuth writes an info-level auth entry.
func (s *AuditService) RecordAuth(ctx context.Context, message string, metadata map[string]any) error {
	return s.Record(ctx, model.EventLevelInfo, model.EventCategoryAuth, message, metadata)
}

// Recent returns the newest entries, newest first.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.queries.ListAuditLogs(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("listing audit log: %w", err)
	}
	out := make([]model.AuditEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.AuditEntry{
			ID: r.ID, Level: r.Level, Category: r.Category,
			Message: r.Message, Metadata: r.Metadata, CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}

// Cleanup removes entries older than retention and returns how many were
// deleted. A non-positive retention keeps everything.
func (s *AuditService) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	n, err := s.queries.DeleteOldAuditLogs(ctx, s.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("deleting old audit entries: %w", err)
	}
	if n > 0 {
		slog.Info("audit log cleaned up", "deleted", n, "category", model.EventCategorySystem)
	}
	return n, nil
}
