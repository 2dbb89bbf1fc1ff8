package store

import (
	"context"
	"database/sql"
	"time"
)

const articleColumns = `id, title, slug, standfirst, content, featured_image, status,
	is_enabled, author_id, category_id, published_at, created_at, updated_at`

var articleColumnsA = qualify("a", articleColumns)

func articleFields(i *Article) []any {
	return []any{
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Standfirst,
		&i.Content,
		&i.FeaturedImage,
		&i.Status,
		&i.IsEnabled,
		&i.AuthorID,
		&i.CategoryID,
		&i.PublishedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	}
}

func scanArticle(row scanner) (Article, error) {
	var i Article
	err := row.Scan(articleFields(&i)...)
	return i, err
}

// ArticleWithRefs is an article with its author and category names.
type ArticleWithRefs struct {
	Article      Article
	AuthorName   string
	CategoryName sql.NullString
}

func scanArticleWithRefs(row scanner) (ArticleWithRefs, error) {
	var i ArticleWithRefs
	err := row.Scan(append(articleFields(&i.Article), &i.AuthorName, &i.CategoryName)...)
	return i, err
}

const createArticle = `-- name: CreateArticle :one
INSERT INTO articles (id, title, slug, standfirst, content, featured_image, status,
	is_enabled, author_id, category_id, published_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + articleColumns

type CreateArticleParams struct {
	ID            string
	Title         string
	Slug          string
	Standfirst    string
	Content       string
	FeaturedImage string
	Status        string
	IsEnabled     bool
	AuthorID      string
	CategoryID    sql.NullString
	PublishedAt   sql.NullTime
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (q *Queries) CreateArticle(ctx context.Context, arg CreateArticleParams) (Article, error) {
	row := q.db.QueryRowContext(ctx, createArticle,
		arg.ID,
		arg.Title,
		arg.Slug,
		arg.Standfirst,
		arg.Content,
		arg.FeaturedImage,
		arg.Status,
		arg.IsEnabled,
		arg.AuthorID,
		arg.CategoryID,
		arg.PublishedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanArticle(row)
}

const updateArticle = `-- name: UpdateArticle :one
UPDATE articles SET
	title = ?, slug = ?, standfirst = ?, content = ?, featured_image = ?, status = ?,
	is_enabled = ?, author_id = ?, category_id = ?, published_at = ?, updated_at = ?
WHERE id = ?
RETURNING ` + articleColumns

type UpdateArticleParams struct {
	Title         string
	Slug          string
	Standfirst    string
	Content       string
	FeaturedImage string
	Status        string
	IsEnabled     bool
	AuthorID      string
	CategoryID    sql.NullString
	PublishedAt   sql.NullTime
	UpdatedAt     time.Time
	ID            string
}

func (q *Queries) UpdateArticle(ctx context.Context, arg UpdateArticleParams) (Article, error) {
	row := q.db.QueryRowContext(ctx, updateArticle,
		arg.Title,
		arg.Slug,
		arg.Standfirst,
		arg.Content,
		arg.FeaturedImage,
		arg.Status,
		arg.IsEnabled,
		arg.AuthorID,
		arg.CategoryID,
		arg.PublishedAt,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanArticle(row)
}

const deleteArticle = `-- name: DeleteArticle :execrows
DELETE FROM articles WHERE id = ?`

func (q *Queries) DeleteArticle(ctx context.Context, id string) (int64, error) {
	return execRows(ctx, q.db, deleteArticle, id)
}

var getArticle = `-- name: GetArticle :one
SELECT ` + articleColumnsA + ` FROM articles a WHERE a.id = ?`

func (q *Queries) GetArticle(ctx context.Context, id string) (Article, error) {
	return scanArticle(q.db.QueryRowContext(ctx, getArticle, id))
}

var getPublishedArticle = `-- name: GetPublishedArticle :one
SELECT ` + articleColumnsA + `, u.name, c.name
FROM articles a
JOIN users u ON u.id = a.author_id
LEFT JOIN categories c ON c.id = a.category_id
WHERE a.id = ? AND a.status = 'PUBLISHED' AND a.is_enabled = 1`

func (q *Queries) GetPublishedArticle(ctx context.Context, id string) (ArticleWithRefs, error) {
	return scanArticleWithRefs(q.db.QueryRowContext(ctx, getPublishedArticle, id))
}

var listPublishedArticles = `-- name: ListPublishedArticles :many
SELECT ` + articleColumnsA + `, u.name, c.name
FROM articles a
JOIN users u ON u.id = a.author_id
LEFT JOIN categories c ON c.id = a.category_id
WHERE a.status = 'PUBLISHED' AND a.is_enabled = 1
	AND (?1 = '' OR a.title LIKE ?2 ESCAPE '\' OR a.slug LIKE ?2 ESCAPE '\')
ORDER BY
	CASE WHEN ?3 = 'asc' THEN a.published_at END ASC,
	CASE WHEN ?3 <> 'asc' THEN a.published_at END DESC,
	a.id DESC
LIMIT ?4`

// ListPublishedParams filters public title/slug listings.
type ListPublishedParams struct {
	Query string
	Sort  string
	Limit int64
}

func (q *Queries) ListPublishedArticles(ctx context.Context, arg ListPublishedParams) ([]ArticleWithRefs, error) {
	return queryRows(ctx, q.db, scanArticleWithRefs, listPublishedArticles,
		arg.Query, likePattern(arg.Query), arg.Sort, arg.Limit)
}

var listRelatedArticles = `-- name: ListRelatedArticles :many
SELECT ` + articleColumnsA + `
FROM articles a
WHERE a.status = 'PUBLISHED' AND a.is_enabled = 1 AND a.id <> ?
ORDER BY a.published_at DESC, a.id DESC
LIMIT ?`

func (q *Queries) ListRelatedArticles(ctx context.Context, exceptID string, limit int64) ([]Article, error) {
	return queryRows(ctx, q.db, scanArticle, listRelatedArticles, exceptID, limit)
}

var listAdminArticles = `-- name: ListAdminArticles :many
SELECT ` + articleColumnsA + `
FROM articles a
WHERE (?1 = '' OR a.author_id = ?1)
	AND (?2 = '' OR a.status = ?2)
	AND (?3 = '' OR a.title LIKE ?4 ESCAPE '\' OR a.slug LIKE ?4 ESCAPE '\')
ORDER BY a.updated_at DESC
LIMIT ?5`

// ListAdminParams filters admin listings. Empty fields match everything.
type ListAdminParams struct {
	AuthorID string
	Status   string
	Query    string
	Year     int64
	Limit    int64
}

func (q *Queries) ListAdminArticles(ctx context.Context, arg ListAdminParams) ([]Article, error) {
	return queryRows(ctx, q.db, scanArticle, listAdminArticles,
		arg.AuthorID, arg.Status, arg.Query, likePattern(arg.Query), arg.Limit)
}

const countArticles = `-- name: CountArticles :one
SELECT COUNT(*) FROM articles`

func (q *Queries) CountArticles(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countArticles).Scan(&count)
	return count, err
}
