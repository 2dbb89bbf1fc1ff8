package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/anandda/magazine/internal/cache"
	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/testutil"
)

type testEnv struct {
	db     *sql.DB
	cache  *cache.MemoryCache
	admin  *AdminService
	public *PublicService
	actor  *model.SessionUser
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	c := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute, MaxSize: 100})
	t.Cleanup(func() { _ = c.Close() })

	user := testutil.CreateUser(t, db, "admin@example.com", "secret-password", "ADMIN")
	return &testEnv{
		db:     db,
		cache:  c,
		admin:  NewAdminService(db, c, nil),
		public: NewPublicService(db, c, time.Minute),
		actor:  &model.SessionUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	}
}

func validArticle(slug string) ArticleInput {
	return ArticleInput{
		Title:         "Title " + slug,
		Slug:          slug,
		Standfirst:    "A short standfirst.",
		Content:       "<p>Body</p>",
		FeaturedImage: "https://res.cloudinary.com/demo/image/upload/v1/a.jpg",
		Status:        model.StatusPublished,
		Tags:          []string{"Meditation"},
	}
}

func createArticle(t *testing.T, env *testEnv, in ArticleInput) model.Article {
	t.Helper()
	a, err := env.admin.CreateArticle(context.Background(), in, env.actor)
	require.NoError(t, err)
	return a
}
