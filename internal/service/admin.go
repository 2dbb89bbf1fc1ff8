// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anandda/magazine/internal/cache"
	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/store"
	"github.com/anandda/magazine/internal/util"
)

// AdminListLimit caps admin listings.
const AdminListLimit = 50

// AdminFilter narrows admin listings. Empty fields match everything.
type AdminFilter struct {
	Query    string
	Status   string
	AuthorID string
	Year     int
}

func (f AdminFilter) params() store.ListAdminParams {
	return store.ListAdminParams{
		AuthorID: strings.TrimSpace(f.AuthorID),
		Status:   string(model.ParseStatus(f.Status, "")),
		Query:    strings.TrimSpace(f.Query),
		Year:     int64(f.Year),
		Limit:    AdminListLimit,
	}
}

// Dashboard summarizes the content for the admin landing page.
type Dashboard struct {
	Articles  int64              `json:"articles"`
	Blogs     int64              `json:"blogs"`
	Events    int64              `json:"events"`
	Magazines int64              `json:"magazines"`
	Press     int64              `json:"press"`
	Users     int64              `json:"users"`
	Audit     []model.AuditEntry `json:"audit"`
}

// AdminService creates, updates and deletes content. Every write drops
// the cached public views of its kind.
type AdminService struct {
	db        *sql.DB
	queries   *store.Queries
	audit     *AuditService
	cache     cache.Cacher
	flipbooks *FlipbookService
	now       func() time.Time
}

// NewAdminService creates an AdminService. The cache and flipbook service
// may be nil.
func NewAdminService(db *sql.DB, c cache.Cacher, flipbooks *FlipbookService) *AdminService {
	return &AdminService{
		db:        db,
		queries:   store.New(db),
		audit:     NewAuditService(db),
		cache:     c,
		flipbooks: flipbooks,
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

func (s *AdminService) inTx(ctx context.Context, fn func(q *store.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(s.queries.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *AdminService) invalidate(ctx context.Context, kinds ...cache.Kind) {
	if s.cache == nil {
		return
	}
	for _, kind := range kinds {
		if err := cache.Invalidate(ctx, s.cache, kind); err != nil {
			slog.Warn("failed to invalidate public cache", "kind", kind, "error", err, "category", model.EventCategoryCache)
		}
	}
}

// stampPublished sets published_at the first time a row is PUBLISHED and
// keeps it afterwards.
func stampPublished(status model.Status, current sql.NullTime, now time.Time) sql.NullTime {
	if current.Valid || status != model.StatusPublished {
		return current
	}
	return sql.NullTime{Time: now, Valid: true}
}

// ensureTagIDs upserts tags by slug and returns their IDs. Names are
// trimmed and de-duplicated, at most MaxTags are kept, and names without
// a usable slug are skipped.
func ensureTagIDs(ctx context.Context, q *store.Queries, names []string, now time.Time) ([]string, error) {
	seen := make(map[string]bool, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	if len(unique) > MaxTags {
		unique = unique[:MaxTags]
	}

	ids := make([]string, 0, len(unique))
	for _, name := range unique {
		slug := util.Slugify(name)
		if slug == "" {
			continue
		}
		tag, err := q.UpsertTag(ctx, store.UpsertTagParams{
			ID: store.NewID(), Name: name, Slug: slug, CreatedAt: now,
		})
		if err != nil {
			return nil, fmt.Errorf("upserting tag %q: %w", name, err)
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

// knownCategory returns the category ID when it exists, else NULL.
func knownCategory(ctx context.Context, q *store.Queries, id string) (sql.NullString, error) {
	if id == "" {
		return sql.NullString{}, nil
	}
	if _, err := q.GetCategory(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.NullString{}, nil
		}
		return sql.NullString{}, fmt.Errorf("loading category: %w", err)
	}
	return sql.NullString{String: id, Valid: true}, nil
}

func checkAuthor(ctx context.Context, q *store.Queries, id string) error {
	if _, err := q.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fieldError("authorId", "Author not found.")
		}
		return fmt.Errorf("loading author: %w", err)
	}
	return nil
}

func defaultAuthor(authorID *string, actor *model.SessionUser) {
	if strings.TrimSpace(*authorID) == "" && actor != nil {
		*authorID = actor.ID
	}
}

// Dashboard returns content counts and the latest audit entries.
func (s *AdminService) Dashboard(ctx context.Context) (Dashboard, error) {
	var (
		d   Dashboard
		err error
	)
	counts := []struct {
		dst *int64
		fn  func(context.Context) (int64, error)
	}{
		{&d.Articles, s.queries.CountArticles},
		{&d.Blogs, s.queries.CountBlogs},
		{&d.Events, s.queries.CountEvents},
		{&d.Magazines, s.queries.CountMagazineIssues},
		{&d.Press, s.queries.CountPressItems},
		{&d.Users, s.queries.CountUsers},
	}
	for _, c := range counts {
		if *c.dst, err = c.fn(ctx); err != nil {
			return d, fmt.Errorf("counting content: %w", err)
		}
	}

	if d.Audit, err = s.audit.Recent(ctx, 10); err != nil {
		return d, err
	}
	return d, nil
}

// ---- Articles

// ListArticles lists articles for the admin, most recently updated first.
func (s *AdminService) ListArticles(ctx context.Context, f AdminFilter) ([]model.Article, error) {
	rows, err := s.queries.ListAdminArticles(ctx, f.params())
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	return mapAll(rows, toArticle), nil
}

// GetArticle returns any article with its tags.
func (s *AdminService) GetArticle(ctx context.Context, id string) (model.Article, error) {
	row, err := s.queries.GetArticle(ctx, id)
	if err != nil {
		return model.Article{}, notFound(err, "article")
	}
	tags, err := s.queries.ListArticleTags(ctx, id)
	if err != nil {
		return model.Article{}, fmt.Errorf("listing article tags: %w", err)
	}
	out := toArticle(row)
	out.Tags = toTags(tags)
	return out, nil
}

// CreateArticle validates in and stores a new article. The author
// defaults to actor.
func (s *AdminService) CreateArticle(ctx context.Context, in ArticleInput, actor *model.SessionUser) (model.Article, error) {
	return s.saveArticle(ctx, "", in, actor)
}

// UpdateArticle replaces every field and the tag set of an article.
func (s *AdminService) UpdateArticle(ctx context.Context, id string, in ArticleInput, actor *model.SessionUser) (model.Article, error) {
	return s.saveArticle(ctx, id, in, actor)
}

func (s *AdminService) saveArticle(ctx context.Context, id string, in ArticleInput, actor *model.SessionUser) (model.Article, error) {
	defaultAuthor(&in.AuthorID, actor)
	if err := in.Validate(); err != nil {
		return model.Article{}, invalid(err)
	}

	var out model.Article
	err := s.inTx(ctx, func(q *store.Queries) error {
		if err := checkAuthor(ctx, q, in.AuthorID); err != nil {
			return err
		}
		categoryID, err := knownCategory(ctx, q, in.CategoryID)
		if err != nil {
			return err
		}
		now := s.now()
		content := sanitizeContent(in.Content)

		var row store.Article
		if id == "" {
			row, err = q.CreateArticle(ctx, store.CreateArticleParams{
				ID:            store.NewID(),
				Title:         in.Title,
				Slug:          in.Slug,
				Standfirst:    in.Standfirst,
				Content:       content,
				FeaturedImage: in.FeaturedImage,
				Status:        string(in.Status),
				IsEnabled:     enabled(in.IsEnabled),
				AuthorID:      in.AuthorID,
				CategoryID:    categoryID,
				PublishedAt:   stampPublished(in.Status, sql.NullTime{}, now),
				CreatedAt:     now,
				UpdatedAt:     now,
			})
		} else {
			var current store.Article
			if current, err = q.GetArticle(ctx, id); err != nil {
				return notFound(err, "article")
			}
			row, err = q.UpdateArticle(ctx, store.UpdateArticleParams{
				Title:         in.Title,
				Slug:          in.Slug,
				Standfirst:    in.Standfirst,
				Content:       content,
				FeaturedImage: in.FeaturedImage,
				Status:        string(in.Status),
				IsEnabled:     enabled(in.IsEnabled),
				AuthorID:      in.AuthorID,
				CategoryID:    categoryID,
				PublishedAt:   stampPublished(in.Status, current.PublishedAt, now),
				UpdatedAt:     now,
				ID:            id,
			})
		}
		if err != nil {
			return writeError(err, "article")
		}

		if err := q.ClearArticleTags(ctx, row.ID); err != nil {
			return fmt.Errorf("clearing article tags: %w", err)
		}
		tagIDs, err := ensureTagIDs(ctx, q, in.Tags, now)
		if err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			if err := q.AddArticleTag(ctx, row.ID, tagID); err != nil {
				return fmt.Errorf("tagging article: %w", err)
			}
		}
		tags, err := q.ListArticleTags(ctx, row.ID)
		if err != nil {
			return fmt.Errorf("listing article tags: %w", err)
		}

		out = toArticle(row)
		out.Tags = toTags(tags)
		return nil
	})
	if err != nil {
		return model.Article{}, err
	}

	s.invalidate(ctx, cache.KindArticles)
	slog.Info("article saved", "article_id", out.ID, "status", out.Status, "category", model.EventCategoryContent)
	return out, nil
}

// DeleteArticle removes an article and its tag links.
func (s *AdminService) DeleteArticle(ctx context.Context, id string) error {
	n, err := s.queries.DeleteArticle(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting article: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("article %s: %w", id, ErrNotFound)
	}
	s.invalidate(ctx, cache.KindArticles)
	slog.Info("article deleted", "article_id", id, "category", model.EventCategoryContent)
	return nil
}

// ---- Blogs

// ListBlogs lists blogs for the admin, most recently updated first.
func (s *AdminService) ListBlogs(ctx context.Context, f AdminFilter) ([]model.Blog, error) {
	rows, err := s.queries.ListAdminBlogs(ctx, f.params())
	if err != nil {
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	return mapAll(rows, toBlog), nil
}

// GetBlog returns any blog with its tags.
func (s *AdminService) GetBlog(ctx context.Context, id string) (model.Blog, error) {
	row, err := s.queries.GetBlog(ctx, id)
	if err != nil {
		return model.Blog{}, notFound(err, "blog")
	}
	tags, err := s.queries.ListBlogTags(ctx, id)
	if err != nil {
		return model.Blog{}, fmt.Errorf("listing blog tags: %w", err)
	}
	out := toBlog(row)
	out.Tags = toTags(tags)
	return out, nil
}

// CreateBlog validates in and stores a new blog. Unknown category IDs are
// dropped and the author defaults to actor.
func (s *AdminService) CreateBlog(ctx context.Context, in BlogInput, actor *model.SessionUser) (model.Blog, error) {
	return s.saveBlog(ctx, "", in, actor)
}

// UpdateBlog replaces every field and the tag set of a blog.
func (s *AdminService) UpdateBlog(ctx context.Context, id string, in BlogInput, actor *model.SessionUser) (model.Blog, error) {
	return s.saveBlog(ctx, id, in, actor)
}

func (s *AdminService) saveBlog(ctx context.Context, id string, in BlogInput, actor *model.SessionUser) (model.Blog, error) {
	defaultAuthor(&in.AuthorID, actor)
	if err := in.Validate(); err != nil {
		return model.Blog{}, invalid(err)
	}

	var out model.Blog
	err := s.inTx(ctx, func(q *store.Queries) error {
		if err := checkAuthor(ctx, q, in.AuthorID); err != nil {
			return err
		}
		categoryID, err := knownCategory(ctx, q, in.CategoryID)
		if err != nil {
			return err
		}
		now := s.now()
		content := sanitizeContent(in.Content)

		var row store.Blog
		if id == "" {
			row, err = q.CreateBlog(ctx, store.CreateBlogParams{
				ID:            store.NewID(),
				Title:         in.Title,
				Slug:          in.Slug,
				Excerpt:       util.NullString(in.Excerpt),
				Content:       content,
				FeaturedImage: util.NullString(in.FeaturedImage),
				Status:        string(in.Status),
				IsEnabled:     enabled(in.IsEnabled),
				AuthorID:      in.AuthorID,
				CategoryID:    categoryID,
				PublishedAt:   stampPublished(in.Status, sql.NullTime{}, now),
				CreatedAt:     now,
				UpdatedAt:     now,
			})
		} else {
			var current store.Blog
			if current, err = q.GetBlog(ctx, id); err != nil {
				return notFound(err, "blog")
			}
			row, err = q.UpdateBlog(ctx, store.UpdateBlogParams{
				Title:         in.Title,
				Slug:          in.Slug,
				Excerpt:       util.NullString(in.Excerpt),
				Content:       content,
				FeaturedImage: util.NullString(in.FeaturedImage),
				Status:        string(in.Status),
				IsEnabled:     enabled(in.IsEnabled),
				AuthorID:      in.AuthorID,
				CategoryID:    categoryID,
				PublishedAt:   stampPublished(in.Status, current.PublishedAt, now),
				UpdatedAt:     now,
				ID:            id,
			})
		}
		if err != nil {
			return writeError(err, "blog")
		}

		if err := q.ClearBlogTags(ctx, row.ID); err != nil {
			return fmt.Errorf("clearing blog tags: %w", err)
		}
		tagIDs, err := ensureTagIDs(ctx, q, in.Tags, now)
		if err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			if err := q.AddBlogTag(ctx, row.ID, tagID); err != nil {
				return fmt.Errorf("tagging blog: %w", err)
			}
		}
		tags, err := q.ListBlogTags(ctx, row.ID)
		if err != nil {
			return fmt.Errorf("listing blog tags: %w", err)
		}

		out = toBlog(row)
		out.Tags = toTags(tags)
		return nil
	})
	if err != nil {
		return model.Blog{}, err
	}

	s.invalidate(ctx, cache.KindBlogs)
	slog.Info("blog saved", "blog_id", out.ID, "status", out.Status, "category", model.EventCategoryContent)
	return out, nil
}

// DeleteBlog removes a blog and its tag links.
func (s *AdminService) DeleteBlog(ctx context.Context, id string) error {
	n, err := s.queries.DeleteBlog(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting blog: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("blog %s: %w", id, ErrNotFound)
	}
	s.invalidate(ctx, cache.KindBlogs)
	slog.Info("blog deleted", "blog_id", id, "category", model.EventCategoryContent)
	return nil
}

// ---- Events

// ListEvents lists events for the admin, most recently updated first.
func (s *AdminService) ListEvents(ctx context.Context, f AdminFilter) ([]model.Event, error) {
	rows, err := s.queries.ListAdminEvents(ctx, f.params())
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return mapAll(rows, toEvent), nil
}

// GetEvent returns any event.
func (s *AdminService) GetEvent(ctx context.Context, id string) (model.Event, error) {
	row, err := s.queries.GetEvent(ctx, id)
	if err != nil {
		return model.Event{}, notFound(err, "event")
	}
	return toEvent(row), nil
}

// CreateEvent validates in and stores a new event.
func (s *AdminService) CreateEvent(ctx context.Context, in EventInput) (model.Event, error) {
	return s.saveEvent(ctx, "", in)
}

// UpdateEvent replaces every field of an event.
func (s *AdminService) UpdateEvent(ctx context.Context, id string, in EventInput) (model.Event, error) {
	return s.saveEvent(ctx, id, in)
}

func (s *AdminService) saveEvent(ctx context.Context, id string, in EventInput) (model.Event, error) {
	if err := in.Validate(); err != nil {
		return model.Event{}, invalid(err)
	}
	start, end := in.dates()
	now := s.now()
	description := sanitizeContent(in.Description)

	var (
		row store.Event
		err error
	)
	if id == "" {
		row, err = s.queries.CreateEvent(ctx, store.CreateEventParams{
			ID:          store.NewID(),
			Title:       in.Title,
			Slug:        in.Slug,
			Description: description,
			BannerImage: util.NullString(in.BannerImage),
			Location:    util.NullString(in.Location),
			IsOnline:    in.IsOnline,
			EventUrl:    util.NullString(in.EventURL),
			StartDate:   start,
			EndDate:     util.NullTimeFromPtr(end),
			Status:      string(in.Status),
			IsEnabled:   enabled(in.IsEnabled),
			PublishedAt: stampPublished(in.Status, sql.NullTime{}, now),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	} else {
		current, gerr := s.queries.GetEvent(ctx, id)
		if gerr != nil {
			return model.Event{}, notFound(gerr, "event")
		}
		row, err = s.queries.UpdateEvent(ctx, store.UpdateEventParams{
			Title:       in.Title,
			Slug:        in.Slug,
			Description: description,
			BannerImage: util.NullString(in.BannerImage),
			Location:    util.NullString(in.Location),
			IsOnline:    in.IsOnline,
			EventUrl:    util.NullString(in.EventURL),
			StartDate:   start,
			EndDate:     util.NullTimeFromPtr(end),
			Status:      string(in.Status),
			IsEnabled:   enabled(in.IsEnabled),
			PublishedAt: stampPublished(in.Status, current.PublishedAt, now),
			UpdatedAt:   now,
			ID:          id,
		})
	}
	if err != nil {
		return model.Event{}, writeError(err, "event")
	}

	s.invalidate(ctx, cache.KindEvents)
	slog.Info("event saved", "event_id", row.ID, "status", row.Status, "category", model.EventCategoryContent)
	return toEvent(row), nil
}

// DeleteEvent removes an event.
func (s *AdminService) DeleteEvent(ctx context.Context, id string) error {
	n, err := s.queries.DeleteEvent(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	s.invalidate(ctx, cache.KindEvents)
	slog.Info("event deleted", "event_id", id, "category", model.EventCategoryContent)
	return nil
}

// ---- Magazine issues

// ListMagazines lists issues for the admin, most recently updated first.
func (s *AdminService) ListMagazines(ctx context.Context, f AdminFilter) ([]model.MagazineIssue, error) {
	rows, err := s.queries.ListAdminMagazineIssues(ctx, f.params())
	if err != nil {
		return nil, fmt.Errorf("listing magazine issues: %w", err)
	}
	return mapAll(rows, toMagazineIssue), nil
}

// GetMagazine returns any issue with its highlights.
func (s *AdminService) GetMagazine(ctx context.Context, id string) (model.MagazineIssue, error) {
	row, err := s.queries.GetMagazineIssue(ctx, id)
	if err != nil {
		return model.MagazineIssue{}, notFound(err, "magazine issue")
	}
	highlights, err := s.queries.ListMagazineHighlights(ctx, id)
	if err != nil {
		return model.MagazineIssue{}, fmt.Errorf("listing highlights: %w", err)
	}
	out := toMagazineIssue(row)
	out.Highlights = toHighlights(highlights)
	return out, nil
}

// CreateMagazine validates in and stores a new issue with its highlights.
func (s *AdminService) CreateMagazine(ctx context.Context, in MagazineInput) (model.MagazineIssue, error) {
	return s.saveMagazine(ctx, "", in)
}

// UpdateMagazine replaces every field and the highlights of an issue. A
// changed flipbook source supersedes any page probe in flight.
func (s *AdminService) UpdateMagazine(ctx context.Context, id string, in MagazineInput) (model.MagazineIssue, error) {
	return s.saveMagazine(ctx, id, in)
}

func (s *AdminService) saveMagazine(ctx context.Context, id string, in MagazineInput) (model.MagazineIssue, error) {
	if err := in.Validate(); err != nil {
		return model.MagazineIssue{}, invalid(err)
	}

	var out model.MagazineIssue
	err := s.inTx(ctx, func(q *store.Queries) error {
		now := s.now()
		var (
			row store.MagazineIssue
			err error
		)
		if id == "" {
			row, err = q.CreateMagazineIssue(ctx, store.CreateMagazineIssueParams{
				ID:          store.NewID(),
				Title:       in.Title,
				Slug:        in.Slug,
				Theme:       util.NullString(in.Theme),
				Month:       int64(in.Month),
				Year:        int64(in.Year),
				CoverImage:  in.CoverImage,
				Description: util.NullString(in.Description),
				FlipbookUrl: in.FlipbookURL,
				PdfUrl:      util.NullString(in.PdfURL),
				Status:      string(in.Status),
				IsEnabled:   enabled(in.IsEnabled),
				PublishedAt: stampPublished(in.Status, sql.NullTime{}, now),
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		} else {
			var current store.MagazineIssue
			if current, err = q.GetMagazineIssue(ctx, id); err != nil {
				return notFound(err, "magazine issue")
			}
			row, err = q.UpdateMagazineIssue(ctx, store.UpdateMagazineIssueParams{
				Title:       in.Title,
				Slug:        in.Slug,
				Theme:       util.NullString(in.Theme),
				Month:       int64(in.Month),
				Year:        int64(in.Year),
				CoverImage:  in.CoverImage,
				Description: util.NullString(in.Description),
				FlipbookUrl: in.FlipbookURL,
				PdfUrl:      util.NullString(in.PdfURL),
				Status:      string(in.Status),
				IsEnabled:   enabled(in.IsEnabled),
				PublishedAt: stampPublished(in.Status, current.PublishedAt, now),
				UpdatedAt:   now,
				ID:          id,
			})
		}
		if err != nil {
			return writeError(err, "magazine issue")
		}

		if err := q.DeleteMagazineHighlights(ctx, row.ID); err != nil {
			return fmt.Errorf("clearing highlights: %w", err)
		}
		highlights := make([]store.MagazineHighlight, 0, len(in.Highlights))
		for i, h := range in.Highlights {
			hl, err := q.CreateMagazineHighlight(ctx, store.CreateMagazineHighlightParams{
				ID:       store.NewID(),
				IssueID:  row.ID,
				Title:    h.Title,
				Summary:  util.NullString(sanitizeText(h.Summary)),
				Position: int64(i),
			})
			if err != nil {
				return fmt.Errorf("creating highlight: %w", err)
			}
			highlights = append(highlights, hl)
		}

		out = toMagazineIssue(row)
		out.Highlights = toHighlights(highlights)
		return nil
	})
	if err != nil {
		return model.MagazineIssue{}, err
	}

	if s.flipbooks != nil {
		s.flipbooks.Track(out.ID, FlipbookSource(out.FlipbookURL, out.PdfURL))
	}
	s.invalidate(ctx, cache.KindMagazines)
	slog.Info("magazine issue saved", "issue_id", out.ID, "status", out.Status, "category", model.EventCategoryContent)
	return out, nil
}

// DeleteMagazine removes an issue, its highlights and its flipbook viewer.
func (s *AdminService) DeleteMagazine(ctx context.Context, id string) error {
	n, err := s.queries.DeleteMagazineIssue(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting magazine issue: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("magazine issue %s: %w", id, ErrNotFound)
	}
	if s.flipbooks != nil {
		s.flipbooks.Forget(id)
	}
	s.invalidate(ctx, cache.KindMagazines)
	slog.Info("magazine issue deleted", "issue_id", id, "category", model.EventCategoryContent)
	return nil
}

// ---- Press

// ListPress lists press items for the admin, most recently updated first.
func (s *AdminService) ListPress(ctx context.Context, f AdminFilter) ([]model.PressItem, error) {
	rows, err := s.queries.ListAdminPressItems(ctx, f.params())
	if err != nil {
		return nil, fmt.Errorf("listing press items: %w", err)
	}
	return mapAll(rows, toPressItem), nil
}

// GetPress returns any press item.
func (s *AdminService) GetPress(ctx context.Context, id string) (model.PressItem, error) {
	row, err := s.queries.GetPressItem(ctx, id)
	if err != nil {
		return model.PressItem{}, notFound(err, "press item")
	}
	return toPressItem(row), nil
}

// CreatePress validates in and stores a new press item.
func (s *AdminService) CreatePress(ctx context.Context, in PressInput) (model.PressItem, error) {
	return s.savePress(ctx, "", in)
}

// UpdatePress replaces every field of a press item.
func (s *AdminService) UpdatePress(ctx context.Context, id string, in PressInput) (model.PressItem, error) {
	return s.savePress(ctx, id, in)
}

func (s *AdminService) savePress(ctx context.Context, id string, in PressInput) (model.PressItem, error) {
	if err := in.Validate(); err != nil {
		return model.PressItem{}, invalid(err)
	}
	now := s.now()

	var (
		row store.PressItem
		err error
	)
	if id == "" {
		row, err = s.queries.CreatePressItem(ctx, store.CreatePressItemParams{
			ID:          store.NewID(),
			Title:       in.Title,
			Source:      util.NullString(in.Source),
			Link:        util.NullString(in.Link),
			Logo:        util.NullString(in.Logo),
			PublishedAt: util.NullTimeFromPtr(in.publishedAt()),
			IsEnabled:   enabled(in.IsEnabled),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	} else {
		row, err = s.queries.UpdatePressItem(ctx, store.UpdatePressItemParams{
			Title:       in.Title,
			Source:      util.NullString(in.Source),
			Link:        util.NullString(in.Link),
			Logo:        util.NullString(in.Logo),
			PublishedAt: util.NullTimeFromPtr(in.publishedAt()),
			IsEnabled:   enabled(in.IsEnabled),
			UpdatedAt:   now,
			ID:          id,
		})
	}
	if err != nil {
		return model.PressItem{}, writeError(err, "press item")
	}

	s.invalidate(ctx, cache.KindPress)
	slog.Info("press item saved", "press_id", row.ID, "category", model.EventCategoryContent)
	return toPressItem(row), nil
}

// DeletePress removes a press item.
func (s *AdminService) DeletePress(ctx context.Context, id string) error {
	n, err := s.queries.DeletePressItem(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting press item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("press item %s: %w", id, ErrNotFound)
	}
	s.invalidate(ctx, cache.KindPress)
	return nil
}

// ---- Taxonomy

// ListTags returns every tag by name.
func (s *AdminService) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := s.queries.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return toTags(rows), nil
}

// SaveTag creates a tag or renames the tag with the same slug.
func (s *AdminService) SaveTag(ctx context.Context, in TaxonomyInput) (model.Tag, error) {
	if err := in.Validate(); err != nil {
		return model.Tag{}, invalid(err)
	}
	row, err := s.queries.UpsertTag(ctx, store.UpsertTagParams{
		ID: store.NewID(), Name: in.Name, Slug: in.Slug, CreatedAt: s.now(),
	})
	if err != nil {
		return model.Tag{}, writeError(err, "tag")
	}
	s.invalidate(ctx, cache.KindArticles, cache.KindBlogs)
	return model.Tag{ID: row.ID, Name: row.Name, Slug: row.Slug}, nil
}

// DeleteTag removes a tag from every article and blog.
func (s *AdminService) DeleteTag(ctx context.Context, id string) error {
	n, err := s.queries.DeleteTag(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("tag %s: %w", id, ErrNotFound)
	}
	s.invalidate(ctx, cache.KindArticles, cache.KindBlogs)
	return nil
}

// ListCategories returns every category by name.
func (s *AdminService) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return mapAll(rows, toCategory), nil
}

// CreateCategory stores a new category.
func (s *AdminService) CreateCategory(ctx context.Context, in TaxonomyInput) (model.Category, error) {
	if err := in.Validate(); err != nil {
		return model.Category{}, invalid(err)
	}
	row, err := s.queries.CreateCategory(ctx, store.CreateCategoryParams{
		ID: store.NewID(), Name: in.Name, Slug: in.Slug, CreatedAt: s.now(),
	})
	if err != nil {
		return model.Category{}, writeError(err, "category")
	}
	return toCategory(row), nil
}

// UpdateCategory renames a category.
func (s *AdminService) UpdateCategory(ctx context.Context, id string, in TaxonomyInput) (model.Category, error) {
	if err := in.Validate(); err != nil {
		return model.Category{}, invalid(err)
	}
	row, err := s.queries.UpdateCategory(ctx, store.UpdateCategoryParams{Name: in.Name, Slug: in.Slug, ID: id})
	if err != nil {
		return model.Category{}, writeError(err, "category")
	}
	s.invalidate(ctx, cache.KindArticles, cache.KindBlogs)
	return toCategory(row), nil
}

// DeleteCategory removes a category. Content in it becomes uncategorized.
func (s *AdminService) DeleteCategory(ctx context.Context, id string) error {
	n, err := s.queries.DeleteCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	s.invalidate(ctx, cache.KindArticles, cache.KindBlogs)
	return nil
}
