package store

import (
	"context"
	"database/sql"
	"time"
)

const magazineIssueColumns = `id, title, slug, theme, month, year, cover_image, description,
	flipbook_url, pdf_url, status, is_enabled, published_at, created_at, updated_at`

func scanMagazineIssue(row scanner) (MagazineIssue, error) {
	var i MagazineIssue
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Theme,
		&i.Month,
		&i.Year,
		&i.CoverImage,
		&i.Description,
		&i.FlipbookUrl,
		&i.PdfUrl,
		&i.Status,
		&i.IsEnabled,
		&i.PublishedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createMagazineIssue = `-- name: CreateMagazineIssue :one
INSERT INTO magazine_issues (id, title, slug, theme, month, year, cover_image, description,
	flipbook_url, pdf_url, status, is_enabled, published_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + magazineIssueColumns

type CreateMagazineIssueParams struct {
	ID          string
	Title       string
	Slug        string
	Theme       sql.NullString
	Month       int64
	Year        int64
	CoverImage  string
	Description sql.NullString
	FlipbookUrl string
	PdfUrl      sql.NullString
	Status      string
	IsEnabled   bool
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateMagazineIssue(ctx context.Context, arg CreateMagazineIssueParams) (MagazineIssue, error) {
	row := q.db.QueryRowContext(ctx, createMagazineIssue,
		arg.ID,
		arg.Title,
		arg.Slug,
		arg.Theme,
		arg.Month,
		arg.Year,
		arg.CoverImage,
		arg.Description,
		arg.FlipbookUrl,
		arg.PdfUrl,
		arg.Status,
		arg.IsEnabled,
		arg.PublishedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanMagazineIssue(row)
}

const updateMagazineIssue = `-- name: UpdateMagazineIssue :one
UPDATE magazine_issues SET
	title = ?, slug = ?, theme = ?, month = ?, year = ?, cover_image = ?, description = ?,
	flipbook_url = ?, pdf_url = ?, status = ?, is_enabled = ?, published_at = ?, updated_at = ?
WHERE id = ?
RETURNING ` + magazineIssueColumns

type UpdateMagazineIssueParams struct {
	Title       string
	Slug        string
	Theme       sql.NullString
	Month       int64
	Year        int64
	CoverImage  string
	Description sql.NullString
	FlipbookUrl string
	PdfUrl      sql.NullString
	Status      string
	IsEnabled   bool
	PublishedAt sql.NullTime
	UpdatedAt   time.Time
	ID          string
}

func (q *Queries) UpdateMagazineIssue(ctx context.Context, arg UpdateMagazineIssueParams) (MagazineIssue, error) {
	row := q.db.QueryRowContext(ctx, updateMagazineIssue,
		arg.Title,
		arg.Slug,
		arg.Theme,
		arg.Month,
		arg.Year,
		arg.CoverImage,
		arg.Description,
		arg.FlipbookUrl,
		arg.PdfUrl,
		arg.Status,
		arg.IsEnabled,
		arg.PublishedAt,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanMagazineIssue(row)
}

const deleteMagazineIssue = `-- name: DeleteMagazineIssue :execrows
DELETE FROM magazine_issues WHERE id = ?`

func (q *Queries) DeleteMagazineIssue(ctx context.Context, id string) (int64, error) {
	return execRows(ctx, q.db, deleteMagazineIssue, id)
}

const getMagazineIssue = `-- name: GetMagazineIssue :one
SELECT ` + magazineIssueColumns + ` FROM magazine_issues WHERE id = ?`

func (q *Queries) GetMagazineIssue(ctx context.Context, id string) (MagazineIssue, error) {
	return scanMagazineIssue(q.db.QueryRowContext(ctx, getMagazineIssue, id))
}

const getPublishedMagazineIssue = `-- name: GetPublishedMagazineIssue :one
SELECT ` + magazineIssueColumns + ` FROM magazine_issues
WHERE id = ? AND status = 'PUBLISHED' AND is_enabled = 1`

func (q *Queries) GetPublishedMagazineIssue(ctx context.Context, id string) (MagazineIssue, error) {
	return scanMagazineIssue(q.db.QueryRowContext(ctx, getPublishedMagazineIssue, id))
}

const listPublishedMagazineIssues = `-- name: ListPublishedMagazineIssues :many
SELECT ` + magazineIssueColumns + ` FROM magazine_issues
WHERE status = 'PUBLISHED' AND is_enabled = 1
	AND (?1 = 0 OR year = ?1)
	AND (?2 = '' OR title LIKE ?3 ESCAPE '\' OR slug LIKE ?3 ESCAPE '\')
ORDER BY year DESC, month DESC
LIMIT ?4`

type ListPublishedMagazineIssuesParams struct {
	Year  int64
	Query string
	Limit int64
}

func (q *Queries) ListPublishedMagazineIssues(ctx context.Context, arg ListPublishedMagazineIssuesParams) ([]MagazineIssue, error) {
	return queryRows(ctx, q.db, scanMagazineIssue, listPublishedMagazineIssues,
		arg.Year, arg.Query, likePattern(arg.Query), arg.Limit)
}

const listRelatedMagazineIssues = `-- name: ListRelatedMagazineIssues :many
SELECT ` + magazineIssueColumns + ` FROM magazine_issues
WHERE status = 'PUBLISHED' AND is_enabled = 1 AND id <> ?
ORDER BY year DESC, month DESC
LIMIT ?`

func (q *Queries) ListRelatedMagazineIssues(ctx context.Context, exceptID string, limit int64) ([]MagazineIssue, error) {
	return queryRows(ctx, q.db, scanMagazineIssue, listRelatedMagazineIssues, exceptID, limit)
}

const listAdminMagazineIssues = `-- name: ListAdminMagazineIssues :many
SELECT ` + magazineIssueColumns + ` FROM magazine_issues
WHERE (?1 = '' OR status = ?1)
	AND (?2 = 0 OR year = ?2)
	AND (?3 = '' OR title LIKE ?4 ESCAPE '\' OR slug LIKE ?4 ESCAPE '\')
ORDER BY updated_at DESC
LIMIT ?5`

func (q *Queries) ListAdminMagazineIssues(ctx context.Context, arg ListAdminParams) ([]MagazineIssue, error) {
	return queryRows(ctx, q.db, scanMagazineIssue, listAdminMagazineIssues,
		arg.Status, arg.Year, arg.Query, likePattern(arg.Query), arg.Limit)
}

const listFlipbookIssues = `-- name: ListFlipbookIssues :many
SELECT ` + magazineIssueColumns + ` FROM magazine_issues
WHERE status = 'PUBLISHED' AND is_enabled = 1
	AND (flipbook_url <> '' OR COALESCE(pdf_url, '') <> '')
ORDER BY year DESC, month DESC`

// ListFlipbookIssues returns visible issues that have a flipbook or PDF URL.
func (q *Queries) ListFlipbookIssues(ctx context.Context) ([]MagazineIssue, error) {
	return queryRows(ctx, q.db, scanMagazineIssue, listFlipbookIssues)
}

const countMagazineIssues = `-- name: CountMagazineIssues :one
SELECT COUNT(*) FROM magazine_issues`

func (q *Queries) CountMagazineIssues(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countMagazineIssues).Scan(&count)
	return count, err
}

const magazineHighlightColumns = `id, issue_id, title, summary, position`

func scanMagazineHighlight(row scanner) (MagazineHighlight, error) {
	var i MagazineHighlight
	err := row.Scan(&i.ID, &i.IssueID, &i.Title, &i.Summary, &i.Position)
	return i, err
}

const createMagazineHighlight = `-- name: CreateMagazineHighlight :one
INSERT INTO magazine_highlights (id, issue_id, title, summary, position)
VALUES (?, ?, ?, ?, ?)
RETURNING ` + magazineHighlightColumns

type CreateMagazineHighlightParams struct {
	ID       string
	IssueID  string
	Title    string
	Summary  sql.NullString
	Position int64
}

func (q *Queries) CreateMagazineHighlight(ctx context.Context, arg CreateMagazineHighlightParams) (MagazineHighlight, error) {
	row := q.db.QueryRowContext(ctx, createMagazineHighlight,
		arg.ID, arg.IssueID, arg.Title, arg.Summary, arg.Position)
	return scanMagazineHighlight(row)
}

const listMagazineHighlights = `-- name: ListMagazineHighlights :many
SELECT ` + magazineHighlightColumns + ` FROM magazine_highlights
WHERE issue_id = ?
ORDER BY position, id`

func (q *Queries) ListMagazineHighlights(ctx context.Context, issueID string) ([]MagazineHighlight, error) {
	return queryRows(ctx, q.db, scanMagazineHighlight, listMagazineHighlights, issueID)
}

const deleteMagazineHighlights = `-- name: DeleteMagazineHighlights :exec
DELETE FROM magazine_highlights WHERE issue_id = ?`

func (q *Queries) DeleteMagazineHighlights(ctx context.Context, issueID string) error {
	_, err := q.db.ExecContext(ctx, deleteMagazineHighlights, issueID)
	return err
}
