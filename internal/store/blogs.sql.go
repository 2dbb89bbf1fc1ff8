package store

import (
	"context"
	"database/sql"
	"time"
)

const blogColumns = `id, title, slug, excerpt, content, featured_image, status,
	is_enabled, author_id, category_id, published_at, created_at, updated_at`

var blogColumnsB = qualify("b", blogColumns)

func blogFields(i *Blog) []any {
	return []any{
		&i.ID,
		&i.Title,
		&i.Slug,
		&i.Excerpt,
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

func scanBlog(row scanner) (Blog, error) {
	var i Blog
	err := row.Scan(blogFields(&i)...)
	return i, err
}

// BlogWithRefs is a blog with its author and category names.
type BlogWithRefs struct {
	Blog         Blog
	AuthorName   string
	CategoryName sql.NullString
}

func scanBlogWithRefs(row scanner) (BlogWithRefs, error) {
	var i BlogWithRefs
	err := row.Scan(append(blogFields(&i.Blog), &i.AuthorName, &i.CategoryName)...)
	return i, err
}

const createBlog = `-- name: CreateBlog :one
INSERT INTO blogs (id, title, slug, excerpt, content, featured_image, status,
	is_enabled, author_id, category_id, published_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + blogColumns

type CreateBlogParams struct {
	ID            string
	Title         string
	Slug          string
	Excerpt       sql.NullString
	Content       string
	FeaturedImage sql.NullString
	Status        string
	IsEnabled     bool
	AuthorID      string
	CategoryID    sql.NullString
	PublishedAt   sql.NullTime
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (q *Queries) CreateBlog(ctx context.Context, arg CreateBlogParams) (Blog, error) {
	row := q.db.QueryRowContext(ctx, createBlog,
		arg.ID,
		arg.Title,
		arg.Slug,
		arg.Excerpt,
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
	return scanBlog(row)
}

const updateBlog = `-- name: UpdateBlog :one
UPDATE blogs SET
	title = ?, slug = ?, excerpt = ?, content = ?, featured_image = ?, status = ?,
	is_enabled = ?, author_id = ?, category_id = ?, published_at = ?, updated_at = ?
WHERE id = ?
RETURNING ` + blogColumns

type UpdateBlogParams struct {
	Title         string
	Slug          string
	Excerpt       sql.NullString
	Content       string
	FeaturedImage sql.NullString
	Status        string
	IsEnabled     bool
	AuthorID      string
	CategoryID    sql.NullString
	PublishedAt   sql.NullTime
	UpdatedAt     time.Time
	ID            string
}

func (q *Queries) UpdateBlog(ctx context.Context, arg UpdateBlogParams) (Blog, error) {
	row := q.db.QueryRowContext(ctx, updateBlog,
		arg.Title,
		arg.Slug,
		arg.Excerpt,
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
	return scanBlog(row)
}

const deleteBlog = `-- name: DeleteBlog :execrows
DELETE FROM blogs WHERE id = ?`

func (q *Queries) DeleteBlog(ctx context.Context, id string) (int64, error) {
	return execRows(ctx, q.db, deleteBlog, id)
}

var getBlog = `-- name: GetBlog :one
SELECT ` + blogColumnsB + ` FROM blogs b WHERE b.id = ?`

func (q *Queries) GetBlog(ctx context.Context, id string) (Blog, error) {
	return scanBlog(q.db.QueryRowContext(ctx, getBlog, id))
}

var getPublishedBlog = `-- name: GetPublishedBlog :one
SELECT ` + blogColumnsB + `, u.name, c.name
FROM blogs b
JOIN users u ON u.id = b.author_id
LEFT JOIN categories c ON c.id = b.category_id
WHERE b.id = ? AND b.status = 'PUBLISHED' AND b.is_enabled = 1`

func (q *Queries) GetPublishedBlog(ctx context.Context, id string) (BlogWithRefs, error) {
	return scanBlogWithRefs(q.db.QueryRowContext(ctx, getPublishedBlog, id))
}

var listPublishedBlogs = `-- name: ListPublishedBlogs :many
SELECT ` + blogColumnsB + `, u.name, c.name
FROM blogs b
JOIN users u ON u.id = b.author_id
LEFT JOIN categories c ON c.id = b.category_id
WHERE b.status = 'PUBLISHED' AND b.is_enabled = 1
	AND (?1 = '' OR b.title LIKE ?2 ESCAPE '\' OR b.slug LIKE ?2 ESCAPE '\')
ORDER BY
	CASE WHEN ?3 = 'asc' THEN b.published_at END ASC,
	CASE WHEN ?3 <> 'asc' THEN b.published_at END DESC,
	b.id DESC
LIMIT ?4`

func (q *Queries) ListPublishedBlogs(ctx context.Context, arg ListPublishedParams) ([]BlogWithRefs, error) {
	return queryRows(ctx, q.db, scanBlogWithRefs, listPublishedBlogs,
		arg.Query, likePattern(arg.Query), arg.Sort, arg.Limit)
}

var listRelatedBlogs = `-- name: ListRelatedBlogs :many
SELECT ` + blogColumnsB + `
FROM blogs b
WHERE b.status = 'PUBLISHED' AND b.is_enabled = 1 AND b.id <> ?
ORDER BY b.published_at DESC, b.id DESC
LIMIT ?`

func (q *Queries) ListRelatedBlogs(ctx context.Context, exceptID string, limit int64) ([]Blog, error) {
	return queryRows(ctx, q.db, scanBlog, listRelatedBlogs, exceptID, limit)
}

var listAdminBlogs = `-- name: ListAdminBlogs :many
SELECT ` + blogColumnsB + `
FROM blogs b
WHERE (?1 = '' OR b.author_id = ?1)
	AND (?2 = '' OR b.status = ?2)
	AND (?3 = '' OR b.title LIKE ?4 ESCAPE '\' OR b.slug LIKE ?4 ESCAPE '\')
ORDER BY b.updated_at DESC
LIMIT ?5`

func (q *Queries) ListAdminBlogs(ctx context.Context, arg ListAdminParams) ([]Blog, error) {
	return queryRows(ctx, q.db, scanBlog, listAdminBlogs,
		arg.AuthorID, arg.Status, arg.Query, likePattern(arg.Query), arg.Limit)
}

const countBlogs = `-- name: CountBlogs :one
SELECT COUNT(*) FROM blogs`

func (q *Queries) CountBlogs(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countBlogs).Scan(&count)
	return count, err
}
