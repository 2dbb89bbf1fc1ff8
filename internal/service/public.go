// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/anandda/magazine/internal/cache"
	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/store"
)

// Public listing limits.
const (
	HomeLimit    = 3
	ListLimit    = 60
	RelatedLimit = 3
	PerPage      = 9
)

// ListQuery holds the public list parameters. Empty fields match all.
type ListQuery struct {
	Query string
	Sort  string
	Mode  string
	Year  int
	Page  int
}

func (q ListQuery) normalized() ListQuery {
	q.Query = strings.TrimSpace(q.Query)
	q.Sort = strings.ToLower(strings.TrimSpace(q.Sort))
	if q.Sort != "asc" && q.Sort != "desc" {
		q.Sort = ""
	}
	q.Mode = strings.ToLower(strings.TrimSpace(q.Mode))
	if q.Mode != "online" && q.Mode != "offline" {
		q.Mode = ""
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return q
}

// Page is one page of a fetched public list.
type Page[T any] struct {
	Items   []T `json:"items"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Pages   int `json:"pages"`
}

// paginate slices rows into pages of PerPage. Out of range pages are
// clamped to the last page.
func paginate[T any](rows []T, page int) Page[T] {
	total := len(rows)
	pages := (total + PerPage - 1) / PerPage
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * PerPage
	end := min(start+PerPage, total)
	items := make([]T, 0, end-start)
	items = append(items, rows[start:end]...)
	return Page[T]{Items: items, Total: total, Page: page, PerPage: PerPage, Pages: pages}
}

// Detail is a single row with a few other visible rows of the same kind.
type Detail[T any] struct {
	Item    T   `json:"item"`
	Related []T `json:"related"`
}

// Home is the landing page read model.
type Home struct {
	Blogs     []model.Blog          `json:"blogs"`
	Articles  []model.Article       `json:"articles"`
	Posts     []model.PressItem     `json:"posts"`
	Events    []model.Event         `json:"events"`
	Magazines []model.MagazineIssue `json:"magazines"`
}

// PublicService serves published content. Results are cached until an
// admin write invalidates their kind.
type PublicService struct {
	queries *store.Queries
	cache   cache.Cacher
	ttl     time.Duration
}

// NewPublicService creates a PublicService. A nil cache disables caching.
func NewPublicService(db *sql.DB, c cache.Cacher, ttl time.Duration) *PublicService {
	return &PublicService{
		queries: store.New(db),
		cache:   c,
		ttl:     ttl,
	}
}

// cached returns the value at key, loading and storing it on a miss.
// Errors from load are never cached.
func cached[T any](ctx context.Context, s *PublicService, key string, load func() (T, error)) (T, error) {
	if s.cache == nil {
		return load()
	}
	tc := cache.NewTypedCache[T](s.cache, s.ttl)
	v, err := tc.GetOrSet(ctx, key, func() (*T, error) {
		out, err := load()
		if err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return *v, nil
}

// Home returns the newest items of every kind. Events are the next ones
// by start date.
func (s *PublicService) Home(ctx context.Context) (Home, error) {
	return cached(ctx, s, cache.Key(cache.KindHome), func() (Home, error) {
		var h Home
		latest := store.ListPublishedParams{Limit: HomeLimit}

		blogs, err := s.queries.ListPublishedBlogs(ctx, latest)
		if err != nil {
			return h, notFound(err, "home blogs")
		}
		articles, err := s.queries.ListPublishedArticles(ctx, latest)
		if err != nil {
			return h, notFound(err, "home articles")
		}
		posts, err := s.queries.ListEnabledPressItems(ctx, latest)
		if err != nil {
			return h, notFound(err, "home posts")
		}
		events, err := s.queries.ListPublishedEvents(ctx, store.ListPublishedEventsParams{Limit: HomeLimit})
		if err != nil {
			return h, notFound(err, "home events")
		}
		magazines, err := s.queries.ListPublishedMagazineIssues(ctx, store.ListPublishedMagazineIssuesParams{Limit: HomeLimit})
		if err != nil {
			return h, notFound(err, "home magazines")
		}

		h.Blogs = mapAll(blogs, publicBlogWithRefs)
		h.Articles = mapAll(articles, publicArticleWithRefs)
		h.Posts = mapAll(posts, publicPressItem)
		h.Events = mapAll(events, publicEvent)
		h.Magazines = mapAll(magazines, publicMagazineIssue)
		return h, nil
	})
}

// ListArticles matches q against title or slug, newest first unless sort
// is "asc".
func (s *PublicService) ListArticles(ctx context.Context, q ListQuery) (Page[model.Article], error) {
	q = q.normalized()
	rows, err := cached(ctx, s, cache.Key(cache.KindArticles, "list", q.Query, q.Sort), func() ([]model.Article, error) {
		rows, err := s.queries.ListPublishedArticles(ctx, store.ListPublishedParams{Query: q.Query, Sort: q.Sort, Limit: ListLimit})
		if err != nil {
			return nil, notFound(err, "articles")
		}
		return mapAll(rows, publicArticleWithRefs), nil
	})
	if err != nil {
		return Page[model.Article]{}, err
	}
	return paginate(rows, q.Page), nil
}

// GetArticle returns a published article with its tags and related articles.
func (s *PublicService) GetArticle(ctx context.Context, id string) (Detail[model.Article], error) {
	return cached(ctx, s, cache.Key(cache.KindArticles, "detail", id), func() (Detail[model.Article], error) {
		var d Detail[model.Article]
		row, err := s.queries.GetPublishedArticle(ctx, id)
		if err != nil {
			return d, notFound(err, "article")
		}
		tags, err := s.queries.ListArticleTags(ctx, id)
		if err != nil {
			return d, notFound(err, "article tags")
		}
		related, err := s.queries.ListRelatedArticles(ctx, id, RelatedLimit)
		if err != nil {
			return d, notFound(err, "related articles")
		}
		d.Item = publicArticleWithRefs(row)
		d.Item.Tags = toTags(tags)
		d.Related = mapAll(related, publicArticle)
		return d, nil
	})
}

// ListBlogs matches q against title or slug, newest first unless sort is
// "asc".
func (s *PublicService) ListBlogs(ctx context.Context, q ListQuery) (Page[model.Blog], error) {
	q = q.normalized()
	rows, err := cached(ctx, s, cache.Key(cache.KindBlogs, "list", q.Query, q.Sort), func() ([]model.Blog, error) {
		rows, err := s.queries.ListPublishedBlogs(ctx, store.ListPublishedParams{Query: q.Query, Sort: q.Sort, Limit: ListLimit})
		if err != nil {
			return nil, notFound(err, "blogs")
		}
		return mapAll(rows, publicBlogWithRefs), nil
	})
	if err != nil {
		return Page[model.Blog]{}, err
	}
	return paginate(rows, q.Page), nil
}

// GetBlog returns a published blog with its tags and related blogs.
func (s *PublicService) GetBlog(ctx context.Context, id string) (Detail[model.Blog], error) {
	return cached(ctx, s, cache.Key(cache.KindBlogs, "detail", id), func() (Detail[model.Blog], error) {
		var d Detail[model.Blog]
		row, err := s.queries.GetPublishedBlog(ctx, id)
		if err != nil {
			return d, notFound(err, "blog")
		}
		tags, err := s.queries.ListBlogTags(ctx, id)
		if err != nil {
			return d, notFound(err, "blog tags")
		}
		related, err := s.queries.ListRelatedBlogs(ctx, id, RelatedLimit)
		if err != nil {
			return d, notFound(err, "related blogs")
		}
		d.Item = publicBlogWithRefs(row)
		d.Item.Tags = toTags(tags)
		d.Related = mapAll(related, publicBlog)
		return d, nil
	})
}

// ListPosts lists enabled press items. q matches title or source.
func (s *PublicService) ListPosts(ctx context.Context, q ListQuery) (Page[model.PressItem], error) {
	q = q.normalized()
	rows, err := cached(ctx, s, cache.Key(cache.KindPress, "list", q.Query, q.Sort), func() ([]model.PressItem, error) {
		rows, err := s.queries.ListEnabledPressItems(ctx, store.ListPublishedParams{Query: q.Query, Sort: q.Sort, Limit: ListLimit})
		if err != nil {
			return nil, notFound(err, "posts")
		}
		return mapAll(rows, publicPressItem), nil
	})
	if err != nil {
		return Page[model.PressItem]{}, err
	}
	return paginate(rows, q.Page), nil
}

// GetPost returns an enabled press item with related items.
func (s *PublicService) GetPost(ctx context.Context, id string) (Detail[model.PressItem], error) {
	return cached(ctx, s, cache.Key(cache.KindPress, "detail", id), func() (Detail[model.PressItem], error) {
		var d Detail[model.PressItem]
		row, err := s.queries.GetEnabledPressItem(ctx, id)
		if err != nil {
			return d, notFound(err, "post")
		}
		related, err := s.queries.ListRelatedPressItems(ctx, id, RelatedLimit)
		if err != nil {
			return d, notFound(err, "related posts")
		}
		d.Item = publicPressItem(row)
		d.Related = mapAll(related, publicPressItem)
		return d, nil
	})
}

// ListEvents orders by start date, soonest first unless sort is "desc".
// Mode "online" or "offline" filters on the event format.
func (s *PublicService) ListEvents(ctx context.Context, q ListQuery) (Page[model.Event], error) {
	q = q.normalized()
	rows, err := cached(ctx, s, cache.Key(cache.KindEvents, "list", q.Query, q.Sort, q.Mode), func() ([]model.Event, error) {
		rows, err := s.queries.ListPublishedEvents(ctx, store.ListPublishedEventsParams{
			Query: q.Query, Mode: q.Mode, Sort: q.Sort, Limit: ListLimit,
		})
		if err != nil {
			return nil, notFound(err, "events")
		}
		return mapAll(rows, publicEvent), nil
	})
	if err != nil {
		return Page[model.Event]{}, err
	}
	return paginate(rows, q.Page), nil
}

// GetEvent returns a published event with related events.
func (s *PublicService) GetEvent(ctx context.Context, id string) (Detail[model.Event], error) {
	return cached(ctx, s, cache.Key(cache.KindEvents, "detail", id), func() (Detail[model.Event], error) {
		var d Detail[model.Event]
		row, err := s.queries.GetPublishedEvent(ctx, id)
		if err != nil {
			return d, notFound(err, "event")
		}
		related, err := s.queries.ListRelatedEvents(ctx, id, RelatedLimit)
		if err != nil {
			return d, notFound(err, "related events")
		}
		d.Item = publicEvent(row)
		d.Related = mapAll(related, publicEvent)
		return d, nil
	})
}

// ListMagazines orders issues by year and month, newest first.
func (s *PublicService) ListMagazines(ctx context.Context, q ListQuery) (Page[model.MagazineIssue], error) {
	q = q.normalized()
	key := cache.Key(cache.KindMagazines, "list", q.Query, strconv.Itoa(q.Year))
	rows, err := cached(ctx, s, key, func() ([]model.MagazineIssue, error) {
		rows, err := s.queries.ListPublishedMagazineIssues(ctx, store.ListPublishedMagazineIssuesParams{
			Year: int64(q.Year), Query: q.Query, Limit: ListLimit,
		})
		if err != nil {
			return nil, notFound(err, "magazines")
		}
		return mapAll(rows, publicMagazineIssue), nil
	})
	if err != nil {
		return Page[model.MagazineIssue]{}, err
	}
	return paginate(rows, q.Page), nil
}

// GetMagazine returns a published issue with its highlights and related
// issues.
func (s *PublicService) GetMagazine(ctx context.Context, id string) (Detail[model.MagazineIssue], error) {
	return cached(ctx, s, cache.Key(cache.KindMagazines, "detail", id), func() (Detail[model.MagazineIssue], error) {
		var d Detail[model.MagazineIssue]
		row, err := s.queries.GetPublishedMagazineIssue(ctx, id)
		if err != nil {
			return d, notFound(err, "magazine issue")
		}
		highlights, err := s.queries.ListMagazineHighlights(ctx, id)
		if err != nil {
			return d, notFound(err, "magazine highlights")
		}
		related, err := s.queries.ListRelatedMagazineIssues(ctx, id, RelatedLimit)
		if err != nil {
			return d, notFound(err, "related magazines")
		}
		d.Item = publicMagazineIssue(row)
		d.Item.Highlights = toHighlights(highlights)
		d.Related = mapAll(related, publicMagazineIssue)
		return d, nil
	})
}
