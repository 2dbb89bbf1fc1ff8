package store

import (
	"context"
	"time"
)

const auditLogColumns = `id, level, category, message, metadata, created_at`

func scanAuditLog(row scanner) (AuditLog, error) {
	var i AuditLog
	err := row.Scan(&i.ID, &i.Level, &i.Category, &i.Message, &i.Metadata, &i.CreatedAt)
	return i, err
}

const createAuditLog = `-- name: CreateAuditLog :one
INSERT INTO audit_log (level, category, message, metadata, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING ` + auditLogColumns

type CreateAuditLogParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

func (q *Queries) CreateAuditLog(ctx context.Context, arg CreateAuditLogParams) (AuditLog, error) {
	row := q.db.QueryRowContext(ctx, createAuditLog,
		arg.Level, arg.Category, arg.Message, arg.Metadata, arg.CreatedAt)
	return scanAuditLog(row)
}

const listAuditLogs = `-- name: ListAuditLogs :many
SELECT ` + auditLogColumns + ` FROM audit_log
ORDER BY created_at DESC, id DESC
LIMIT ?`

func (q *Queries) ListAuditLogs(ctx context.Context, limit int64) ([]AuditLog, error) {
	return queryRows(ctx, q.db, scanAuditLog, listAuditLogs, limit)
}

const deleteOldAuditLogs = `-- name: DeleteOldAuditLogs :execrows
DELETE FROM audit_log WHERE created_at < ?`

func (q *Queries) DeleteOldAuditLogs(ctx context.Context, before time.Time) (int64, error) {
	return execRows(ctx, q.db, deleteOldAuditLogs, before.UTC())
}
