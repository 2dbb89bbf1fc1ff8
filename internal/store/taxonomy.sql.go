package store

import (
	"context"
	"time"
)

const tagColumns = `id, name, slug, created_at`

func scanTag(row scanner) (Tag, error) {
	var i Tag
	err := row.Scan(&i.ID, &i.Name, &i.Slug, &i.CreatedAt)
	return i, err
}

func (q *Queries) queryTags(ctx context.Context, query string, args ...any) ([]Tag, error) {
	return queryRows(ctx, q.db, scanTag, query, args...)
}

const upsertTag = `-- name: UpsertTag :one
INSERT INTO tags (id, name, slug, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (slug) DO UPDATE SET name = excluded.name
RETURNING ` + tagColumns

type UpsertTagParams struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
}

// UpsertTag creates a tag or renames the existing tag with the same slug.
// The ID of an existing tag is kept.
func (q *Queries) UpsertTag(ctx context.Context, arg UpsertTagParams) (Tag, error) {
	return scanTag(q.db.QueryRowContext(ctx, upsertTag, arg.ID, arg.Name, arg.Slug, arg.CreatedAt))
}

const getTag = `-- name: GetTag :one
SELECT ` + tagColumns + ` FROM tags WHERE id = ?`

func (q *Queries) GetTag(ctx context.Context, id string) (Tag, error) {
	return scanTag(q.db.QueryRowContext(ctx, getTag, id))
}

const listTags = `-- name: ListTags :many
SELECT ` + tagColumns + ` FROM tags ORDER BY name`

func (q *Queries) ListTags(ctx context.Context) ([]Tag, error) {
	return q.queryTags(ctx, listTags)
}

const deleteTag = `-- name: DeleteTag :execrows
DELETE FROM tags WHERE id = ?`

func (q *Queries) DeleteTag(ctx context.Context, id string) (int64, error) {
	return execRows(ctx, q.db, deleteTag, id)
}

const listArticleTags = `-- name: ListArticleTags :many
SELECT t.id, t.name, t.slug, t.created_at
FROM tags t
JOIN article_tags atg ON atg.tag_id = t.id
WHERE atg.article_id = ?
ORDER BY t.name`

func (q *Queries) ListArticleTags(ctx context.Context, articleID string) ([]Tag, error) {
	return q.queryTags(ctx, listArticleTags, articleID)
}

const clearArticleTags = `-- name: ClearArticleTags :exec
DELETE FROM article_tags WHERE article_id = ?`

func (q *Queries) ClearArticleTags(ctx context.Context, articleID string) error {
	_, err := q.db.ExecContext(ctx, clearArticleTags, articleID)
	return err
}

const addArticleTag = `-- name: AddArticleTag :exec
INSERT OR IGNORE INTO article_tags (article_id, tag_id) VALUES (?, ?)`

func (q *Queries) AddArticleTag(ctx context.Context, articleID, tagID string) error {
	_, err := q.db.ExecContext(ctx, addArticleTag, articleID, tagID)
	return err
}

const listBlogTags = `-- name: ListBlogTags :many
SELECT t.id, t.name, t.slug, t.created_at
FROM tags t
JOIN blog_tags bt ON bt.tag_id = t.id
WHERE bt.blog_id = ?
ORDER BY t.name`

func (q *Queries) ListBlogTags(ctx context.Context, blogID string) ([]Tag, error) {
	return q.queryTags(ctx, listBlogTags, blogID)
}

const clearBlogTags = `-- name: ClearBlogTags :exec
DELETE FROM blog_tags WHERE blog_id = ?`

func (q *Queries) ClearBlogTags(ctx context.Context, blogID string) error {
	_, err := q.db.ExecContext(ctx, clearBlogTags, blogID)
	return err
}

const addBlogTag = `-- name: AddBlogTag :exec
INSERT OR IGNORE INTO blog_tags (blog_id, tag_id) VALUES (?, ?)`

func (q *Queries) AddBlogTag(ctx context.Context, blogID, tagID string) error {
	_, err := q.db.ExecContext(ctx, addBlogTag, blogID, tagID)
	return err
}

const categoryColumns = `id, name, slug, created_at`

func scanCategory(row scanner) (Category, error) {
	var i Category
	err := row.Scan(&i.ID, &i.Name, &i.Slug, &i.CreatedAt)
	return i, err
}

const createCategory = `-- name: CreateCategory :one
INSERT INTO categories (id, name, slug, created_at)
VALUES (?, ?, ?, ?)
RETURNING ` + categoryColumns

type CreateCategoryParams struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
}

func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	return scanCategory(q.db.QueryRowContext(ctx, createCategory, arg.ID, arg.Name, arg.Slug, arg.CreatedAt))
}

const updateCategory = `-- name: UpdateCategory :one
UPDATE categories SET name = ?, slug = ? WHERE id = ?
RETURNING ` + categoryColumns

type UpdateCategoryParams struct {
	Name string
	Slug string
	ID   string
}

func (q *Queries) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (Category, error) {
	return scanCategory(q.db.QueryRowContext(ctx, updateCategory, arg.Name, arg.Slug, arg.ID))
}

const getCategory = `-- name: GetCategory :one
SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`

func (q *Queries) GetCategory(ctx context.Context, id string) (Category, error) {
	return scanCategory(q.db.QueryRowContext(ctx, getCategory, id))
}

const listCategories = `-- name: ListCategories :many
SELECT ` + categoryColumns + ` FROM categories ORDER BY name`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	return queryRows(ctx, q.db, scanCategory, listCategories)
}

const deleteCategory = `-- name: DeleteCategory :execrows
DELETE FROM categories WHERE id = ?`

func (q *Queries) DeleteCategory(ctx context.Context, id string) (int64, error) {
	return execRows(ctx, q.db, deleteCategory, id)
}
