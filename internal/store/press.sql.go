package store

import (
	"context"
	"database/sql"
	"time"
)

const pressItemColumns = `id, title, source, link, logo, published_at, is_enabled, created_at, updated_at`

func scanPressItem(row scanner) (PressItem, error) {
	var i PressItem
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Source,
		&i.Link,
		&i.Logo,
		&i.PublishedAt,
		&i.IsEnabled,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createPressItem = `-- name: CreatePressItem :one
INSERT INTO press_items (id, title, source, link, logo, published_at, is_enabled, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + pressItemColumns

type CreatePressItemParams struct {
	ID          string
	Title       string
	Source      sql.NullString
	Link        sql.NullString
	Logo        sql.NullString
	PublishedAt sql.NullTime
	IsEnabled   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreatePressItem(ctx context.Context, arg CreatePressItemParams) (PressItem, error) {
	row := q.db.QueryRowContext(ctx, createPressItem,
		arg.ID,
		arg.Title,
		arg.Source,
		arg.Link,
		arg.Logo,
		arg.PublishedAt,
		arg.IsEnabled,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanPressItem(row)
}

const updatePressItem = `-- name: UpdatePressItem :one
UPDATE press_items SET
	title = ?, source = ?, link = ?, logo = ?, published_at = ?, is_enabled = ?, updated_at = ?
WHERE id = ?
RETURNING ` + pressItemColumns

type UpdatePressItemParams struct {
	Title       string
	Source      sql.NullString
	Link        sql.NullString
	Logo        sql.NullString
	PublishedAt sql.NullTime
	IsEnabled   bool
	UpdatedAt   time.Time
	ID          string
}

func (q *Queries) UpdatePressItem(ctx context.Context, arg UpdatePressItemParams) (PressItem, error) {
	row := q.db.QueryRowContext(ctx, updatePressItem,
		arg.Title,
		arg.Source,
		arg.Link,
		arg.Logo,
		arg.PublishedAt,
		arg.IsEnabled,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanPressItem(row)
}

const deletePressItem = `-- name: DeletePressItem :execrows
DELETE FROM press_items WHERE id = ?`

func (q *Queries) DeletePressItem(ctx context.Context, id string) (int64, error) {
	return execRows(ctx, q.db, deletePressItem, id)
}

const getPressItem = `-- name: GetPressItem :one
SELECT ` + pressItemColumns + ` FROM press_items WHERE id = ?`

func (q *Queries) GetPressItem(ctx context.Context, id string) (PressItem, error) {
	return scanPressItem(q.db.QueryRowContext(ctx, getPressItem, id))
}

const getEnabledPressItem = `-- name: GetEnabledPressItem :one
SELECT ` + pressItemColumns + ` FROM press_items WHERE id = ? AND is_enabled = 1`

func (q *Queries) GetEnabledPressItem(ctx context.Context, id string) (PressItem, error) {
	return scanPressItem(q.db.QueryRowContext(ctx, getEnabledPressItem, id))
}

const listEnabledPressItems = `-- name: ListEnabledPressItems :many
SELECT ` + pressItemColumns + ` FROM press_items
WHERE is_enabled = 1
	AND (?1 = '' OR title LIKE ?2 ESCAPE '\' OR source LIKE ?2 ESCAPE '\')
ORDER BY
	CASE WHEN ?3 = 'asc' THEN published_at END ASC,
	CASE WHEN ?3 <> 'asc' THEN published_at END DESC,
	id DESC
LIMIT ?4`

// ListEnabledPressItems matches the query against title or source.
func (q *Queries) ListEnabledPressItems(ctx context.Context, arg ListPublishedParams) ([]PressItem, error) {
	return queryRows(ctx, q.db, scanPressItem, listEnabledPressItems,
		arg.Query, likePattern(arg.Query), arg.Sort, arg.Limit)
}

const listRelatedPressItems = `-- name: ListRelatedPressItems :many
SELECT ` + pressItemColumns + ` FROM press_items
WHERE is_enabled = 1 AND id <> ?
ORDER BY published_at DESC, id DESC
LIMIT ?`

func (q *Queries) ListRelatedPressItems(ctx context.Context, exceptID string, limit int64) ([]PressItem, error) {
	return queryRows(ctx, q.db, scanPressItem, listRelatedPressItems, exceptID, limit)
}

const listAdminPressItems = `-- name: ListAdminPressItems :many
SELECT ` + pressItemColumns + ` FROM press_items
WHERE (?1 = '' OR title LIKE ?2 ESCAPE '\' OR source LIKE ?2 ESCAPE '\')
ORDER BY updated_at DESC
LIMIT ?3`

func (q *Queries) ListAdminPressItems(ctx context.Context, arg ListAdminParams) ([]PressItem, error) {
	return queryRows(ctx, q.db, scanPressItem, listAdminPressItems,
		arg.Query, likePattern(arg.Query), arg.Limit)
}

const countPressItems = `-- name: CountPressItems :one
SELECT COUNT(*) FROM press_items`

func (q *Queries) CountPressItems(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPressItems).Scan(&count)
	return count, err
}
