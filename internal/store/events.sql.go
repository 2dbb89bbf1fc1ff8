package store

import (
	"context"
	"database/sql"
	"time"
)

const eventColumns = `id, title, slug, description, banner_image, location, is_online, event_url,
	start_date, end_date, status, is_enabled, published_at, created_at, updated_at`

func scanEvent(row scanner) (Event, error) {
	var i Event
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Description,
		&i.BannerImage,
		&i.Location,
		&i.IsOnline,
		&i.EventUrl,
		&i.StartDate,
		&i.EndDate,
		&i.Status,
		&i.IsEnabled,
		&i.PublishedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createEvent = `-- name: CreateEvent :one
INSERT INTO events (id, title, slug, description, banner_image, location, is_online, event_url,
	start_date, end_date, status, is_enabled, published_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + eventColumns

type CreateEventParams struct {
	ID          string
	Title       string
	Slug        string
	Description string
	BannerImage sql.NullString
	Location    sql.NullString
	IsOnline    bool
	EventUrl    sql.NullString
	StartDate   time.Time
	EndDate     sql.NullTime
	Status      string
	IsEnabled   bool
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		arg.ID,
		arg.Title,
		arg.Slug,
		arg.Description,
		arg.BannerImage,
		arg.Location,
		arg.IsOnline,
		arg.EventUrl,
		arg.StartDate,
		arg.EndDate,
		arg.Status,
		arg.IsEnabled,
		arg.PublishedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanEvent(row)
}

const updateEvent = `-- name: UpdateEvent :one
UPDATE events SET
	title = ?, slug = ?, description = ?, banner_image = ?, location = ?, is_online = ?,
	event_url = ?, start_date = ?, end_date = ?, status = ?, is_enabled = ?,
	published_at = ?, updated_at = ?
WHERE id = ?
RETURNING ` + eventColumns

type UpdateEventParams struct {
	Title       string
	Slug        string
	Description string
	BannerImage sql.NullString
	Location    sql.NullString
	IsOnline    bool
	EventUrl    sql.NullString
	StartDate   time.Time
	EndDate     sql.NullTime
	Status      string
	IsEnabled   bool
	PublishedAt sql.NullTime
	UpdatedAt   time.Time
	ID          string
}

func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, updateEvent,
		arg.Title,
		arg.Slug,
		arg.Description,
		arg.BannerImage,
		arg.Location,
		arg.IsOnline,
		arg.EventUrl,
		arg.StartDate,
		arg.EndDate,
		arg.Status,
		arg.IsEnabled,
		arg.PublishedAt,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanEvent(row)
}

const deleteEvent = `-- name: DeleteEvent :execrows
DELETE FROM events WHERE id = ?`

func (q *Queries) DeleteEvent(ctx context.Context, id string) (int64, error) {
	return execRows(ctx, q.db, deleteEvent, id)
}

const getEvent = `-- name: GetEvent :one
SELECT ` + eventColumns + ` FROM events WHERE id = ?`

func (q *Queries) GetEvent(ctx context.Context, id string) (Event, error) {
	return scanEvent(q.db.QueryRowContext(ctx, getEvent, id))
}

const getPublishedEvent = `-- name: GetPublishedEvent :one
SELECT ` + eventColumns + ` FROM events
WHERE id = ? AND status = 'PUBLISHED' AND is_enabled = 1`

func (q *Queries) GetPublishedEvent(ctx context.Context, id string) (Event, error) {
	return scanEvent(q.db.QueryRowContext(ctx, getPublishedEvent, id))
}

const listPublishedEvents = `-- name: ListPublishedEvents :many
SELECT ` + eventColumns + ` FROM events
WHERE status = 'PUBLISHED' AND is_enabled = 1
	AND (?1 = '' OR title LIKE ?2 ESCAPE '\' OR slug LIKE ?2 ESCAPE '\')
	AND (?3 = '' OR (?3 = 'online' AND is_online = 1) OR (?3 = 'offline' AND is_online = 0))
ORDER BY
	CASE WHEN ?4 = 'desc' THEN start_date END DESC,
	CASE WHEN ?4 <> 'desc' THEN start_date END ASC,
	id ASC
LIMIT ?5`

type ListPublishedEventsParams struct {
	Query string
	Mode  string
	Sort  string
	Limit int64
}

// ListPublishedEvents orders by start date, ascending unless Sort is "desc".
// Mode "online" or "offline" filters on is_online; other values match all.
func (q *Queries) ListPublishedEvents(ctx context.Context, arg ListPublishedEventsParams) ([]Event, error) {
	return queryRows(ctx, q.db, scanEvent, listPublishedEvents,
		arg.Query, likePattern(arg.Query), arg.Mode, arg.Sort, arg.Limit)
}

const listRelatedEvents = `-- name: ListRelatedEvents :many
SELECT ` + eventColumns + ` FROM events
WHERE status = 'PUBLISHED' AND is_enabled = 1 AND id <> ?
ORDER BY start_date ASC, id ASC
LIMIT ?`

func (q *Queries) ListRelatedEvents(ctx context.Context, exceptID string, limit int64) ([]Event, error) {
	return queryRows(ctx, q.db, scanEvent, listRelatedEvents, exceptID, limit)
}

const listAdminEvents = `-- name: ListAdminEvents :many
SELECT ` + eventColumns + ` FROM events
WHERE (?1 = '' OR status = ?1)
	AND (?2 = '' OR title LIKE ?3 ESCAPE '\' OR slug LIKE ?3 ESCAPE '\')
ORDER BY updated_at DESC
LIMIT ?4`

func (q *Queries) ListAdminEvents(ctx context.Context, arg ListAdminParams) ([]Event, error) {
	return queryRows(ctx, q.db, scanEvent, listAdminEvents,
		arg.Status, arg.Query, likePattern(arg.Query), arg.Limit)
}

const countEvents = `-- name: CountEvents :one
SELECT COUNT(*) FROM events`

func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countEvents).Scan(&count)
	return count, err
}
