// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anandda/magazine/internal/auth"
)

// DemoAuthorEmail owns the demo content. The account gets a random
// password and cannot be used to sign in.
const DemoAuthorEmail = "editorial@anandda.example"

// SeedDemo fills an empty database with a small set of published content.
// It does nothing once any article exists.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountArticles(ctx)
	if err != nil {
		return fmt.Errorf("counting articles: %w", err)
	}
	if count > 0 {
		slog.Info("content already present, skipping demo seed")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	q := queries.WithTx(tx)

	now := time.Now().UTC().Truncate(time.Second)
	published := sql.NullTime{Time: now, Valid: true}

	authorID, err := seedDemoAuthor(ctx, q, now)
	if err != nil {
		return fmt.Errorf("seeding demo author: %w", err)
	}

	category, err := q.CreateCategory(ctx, CreateCategoryParams{
		ID: NewID(), Name: "Practice", Slug: "practice", CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("creating demo category: %w", err)
	}
	categoryID := sql.NullString{String: category.ID, Valid: true}

	tagIDs := make([]string, 0, 3)
	for _, name := range []string{"Meditation", "Breath", "Routine"} {
		tag, err := q.UpsertTag(ctx, UpsertTagParams{
			ID: NewID(), Name: name, Slug: strings.ToLower(name), CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("creating demo tag %q: %w", name, err)
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	for i, a := range demoArticles {
		article, err := q.CreateArticle(ctx, CreateArticleParams{
			ID:            NewID(),
			Title:         a.title,
			Slug:          a.slug,
			Standfirst:    a.summary,
			Content:       a.body,
			FeaturedImage: a.image,
			Status:        "PUBLISHED",
			IsEnabled:     true,
			AuthorID:      authorID,
			CategoryID:    categoryID,
			PublishedAt:   sql.NullTime{Time: now.Add(-time.Duration(i) * 24 * time.Hour), Valid: true},
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("creating demo article %q: %w", a.slug, err)
		}
		for _, tagID := range tagIDs[:2] {
			if err := q.AddArticleTag(ctx, article.ID, tagID); err != nil {
				return fmt.Errorf("tagging demo article: %w", err)
			}
		}
	}

	for i, b := range demoBlogs {
		blog, err := q.CreateBlog(ctx, CreateBlogParams{
			ID:            NewID(),
			Title:         b.title,
			Slug:          b.slug,
			Excerpt:       sql.NullString{},
			Content:       b.body,
			FeaturedImage: sql.NullString{String: b.image, Valid: b.image != ""},
			Status:        "PUBLISHED",
			IsEnabled:     true,
			AuthorID:      authorID,
			CategoryID:    categoryID,
			PublishedAt:   sql.NullTime{Time: now.Add(-time.Duration(i) * 48 * time.Hour), Valid: true},
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("creating demo blog %q: %w", b.slug, err)
		}
		if err := q.AddBlogTag(ctx, blog.ID, tagIDs[2]); err != nil {
			return fmt.Errorf("tagging demo blog: %w", err)
		}
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), 6, 30, 0, 0, time.UTC).AddDate(0, 0, 14)
	if _, err := q.CreateEvent(ctx, CreateEventParams{
		ID:          NewID(),
		Title:       "Sunrise Meditation Circle",
		Slug:        "sunrise-meditation-circle",
		Description: `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"A guided morning sit for all levels."}]}]}`,
		Location:    sql.NullString{String: "Rishikesh", Valid: true},
		StartDate:   start,
		EndDate:     sql.NullTime{Time: start.Add(90 * time.Minute), Valid: true},
		Status:      "PUBLISHED",
		IsEnabled:   true,
		PublishedAt: published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		return fmt.Errorf("creating demo event: %w", err)
	}
	if _, err := q.CreateEvent(ctx, CreateEventParams{
		ID:          NewID(),
		Title:       "Evening Breathwork Online",
		Slug:        "evening-breathwork-online",
		Description: "Forty minutes of pranayama.\nBring a cushion.",
		IsOnline:    true,
		EventUrl:    sql.NullString{String: "https://meet.example.com/anandda-breath", Valid: true},
		StartDate:   start.AddDate(0, 0, 7).Add(12 * time.Hour),
		Status:      "PUBLISHED",
		IsEnabled:   true,
		PublishedAt: published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		return fmt.Errorf("creating demo online event: %w", err)
	}

	issue, err := q.CreateMagazineIssue(ctx, CreateMagazineIssueParams{
		ID:          NewID(),
		Title:       "The Stillness Issue",
		Slug:        "the-stillness-issue",
		Theme:       sql.NullString{String: "Stillness", Valid: true},
		Month:       int64(now.Month()),
		Year:        int64(now.Year()),
		CoverImage:  "https://res.cloudinary.com/demo/image/upload/v1/anandda/stillness-cover.jpg",
		Description: sql.NullString{String: "Essays on quiet attention.", Valid: true},
		FlipbookUrl: "https://res.cloudinary.com/demo/image/upload/v1/anandda/stillness.pdf",
		Status:      "PUBLISHED",
		IsEnabled:   true,
		PublishedAt: published,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("creating demo magazine issue: %w", err)
	}
	for i, title := range []string{"Sitting with restlessness", "A week of silent mornings"} {
		if _, err := q.CreateMagazineHighlight(ctx, CreateMagazineHighlightParams{
			ID: NewID(), IssueID: issue.ID, Title: title, Position: int64(i),
		}); err != nil {
			return fmt.Errorf("creating demo highlight: %w", err)
		}
	}

	if _, err := q.CreatePressItem(ctx, CreatePressItemParams{
		ID:          NewID(),
		Title:       "A magazine for the mindful reader",
		Source:      sql.NullString{String: "The Daily Review", Valid: true},
		Link:        sql.NullString{String: "https://news.example.com/anandda", Valid: true},
		PublishedAt: published,
		IsEnabled:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		return fmt.Errorf("creating demo press item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing demo content: %w", err)
	}
	slog.Info("demo content seeded successfully")
	return nil
}

func seedDemoAuthor(ctx context.Context, q *Queries, now time.Time) (string, error) {
	existing, err := q.GetUserByEmail(ctx, DemoAuthorEmail)
	if err == nil {
		return existing.ID, nil
	}

	hash, err := auth.HashPassword(NewID())
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	user, err := q.CreateUser(ctx, CreateUserParams{
		ID:           NewID(),
		Name:         "Anandda Editorial",
		Email:        DemoAuthorEmail,
		PasswordHash: hash,
		Role:         "USER",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

type demoEntry struct {
	title   string
	slug    string
	summary string
	body    string
	image   string
}

var demoArticles = []demoEntry{
	{
		title:   "Five Minutes of Attention",
		slug:    "five-minutes-of-attention",
		summary: "Why short daily practice outlasts heroic retreats.",
		body:    "<p>Begin with five minutes.</p><p>Consistency builds the habit long before depth arrives.</p>",
		image:   "https://res.cloudinary.com/demo/image/upload/v1/anandda/attention.jpg",
	},
	{
		title: "Walking as Practice",
		slug:  "walking-as-practice",
		body:  `{"content":"Slow walking turns a commute into a meditation.\nNotice each step."}`,
		image: "https://res.cloudinary.com/demo/image/upload/v1/anandda/walking.jpg",
	},
}

var demoBlogs = []demoEntry{
	{
		title: "Notes from the Editor",
		slug:  "notes-from-the-editor",
		body:  "This month we return to basics.\nThank you for reading.",
	},
	{
		title: "Reader Letters",
		slug:  "reader-letters",
		body:  `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"Your letters on keeping a practice journal."}]}]}`,
		image: "https://res.cloudinary.com/demo/image/upload/v1/anandda/letters.jpg",
	},
}
