package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// testDB creates a migrated database in a temporary directory.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "anandda-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, q *Queries, email string) User {
	t.Helper()
	now := time.Now().UTC()
	user, err := q.CreateUser(context.Background(), CreateUserParams{
		ID:           NewID(),
		Name:         "Test Author",
		Email:        email,
		PasswordHash: "hashed-password",
		Role:         "USER",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

type articleFixture struct {
	title     string
	slug      string
	status    string
	enabled   bool
	published time.Time
}

func createTestArticle(t *testing.T, q *Queries, authorID string, f articleFixture) Article {
	t.Helper()
	now := time.Now().UTC()
	var pub sql.NullTime
	if !f.published.IsZero() {
		pub = sql.NullTime{Time: f.published, Valid: true}
	}
	a, err := q.CreateArticle(context.Background(), CreateArticleParams{
		ID:          NewID(),
		Title:       f.title,
		Slug:        f.slug,
		Content:     "<p>body</p>",
		Status:      f.status,
		IsEnabled:   f.enabled,
		AuthorID:    authorID,
		PublishedAt: pub,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateArticle(%s): %v", f.slug, err)
	}
	return a
}

func TestCreateAndGetUser(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	user := createTestUser(t, q, "reader@example.com")
	if user.ID == "" {
		t.Fatal("user.ID should not be empty")
	}

	got, err := q.GetUserByEmail(ctx, "READER@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("ID = %q, want %q", got.ID, user.ID)
	}

	if _, err := q.GetUserByEmail(ctx, "missing@example.com"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetUserByEmail(missing) error = %v, want sql.ErrNoRows", err)
	}

	count, err := q.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if count != 1 {
		t.Errorf("CountUsers = %d, want 1", count)
	}
}

func TestUpsertTagKeepsID(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	first, err := q.UpsertTag(ctx, UpsertTagParams{ID: NewID(), Name: "yoga", Slug: "yoga", CreatedAt: now})
	if err != nil {
		t.Fatalf("UpsertTag: %v", err)
	}
	second, err := q.UpsertTag(ctx, UpsertTagParams{ID: NewID(), Name: "Yoga", Slug: "yoga", CreatedAt: now})
	if err != nil {
		t.Fatalf("UpsertTag again: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("upsert changed ID: %q -> %q", first.ID, second.ID)
	}
	if second.Name != "Yoga" {
		t.Errorf("Name = %q, want Yoga", second.Name)
	}

	tags, err := q.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("len(tags) = %d, want 1", len(tags))
	}
}

func TestArticleTags(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	author := createTestUser(t, q, "a@example.com")
	article := createTestArticle(t, q, author.ID, articleFixture{title: "One", slug: "one", status: "DRAFT", enabled: true})

	tag, err := q.UpsertTag(ctx, UpsertTagParams{ID: NewID(), Name: "Breath", Slug: "breath", CreatedAt: now})
	if err != nil {
		t.Fatalf("UpsertTag: %v", err)
	}
	for range 2 {
		if err := q.AddArticleTag(ctx, article.ID, tag.ID); err != nil {
			t.Fatalf("AddArticleTag: %v", err)
		}
	}

	tags, err := q.ListArticleTags(ctx, article.ID)
	if err != nil {
		t.Fatalf("ListArticleTags: %v", err)
	}
	if len(tags) != 1 || tags[0].Slug != "breath" {
		t.Fatalf("tags = %+v, want [breath]", tags)
	}

	if err := q.ClearArticleTags(ctx, article.ID); err != nil {
		t.Fatalf("ClearArticleTags: %v", err)
	}
	tags, _ = q.ListArticleTags(ctx, article.ID)
	if len(tags) != 0 {
		t.Errorf("tags after clear = %d, want 0", len(tags))
	}
}

func TestListPublishedArticles(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	author := createTestUser(t, q, "a@example.com")
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	createTestArticle(t, q, author.ID, articleFixture{"Morning Focus", "morning-focus", "PUBLISHED", true, base})
	createTestArticle(t, q, author.ID, articleFixture{"Evening Calm", "evening-calm", "PUBLISHED", true, base.Add(24 * time.Hour)})
	createTestArticle(t, q, author.ID, articleFixture{"100% Present", "fully-present", "PUBLISHED", true, base.Add(48 * time.Hour)})
	createTestArticle(t, q, author.ID, articleFixture{"Draft Piece", "draft-piece", "DRAFT", true, time.Time{}})
	createTestArticle(t, q, author.ID, articleFixture{"Hidden", "hidden", "PUBLISHED", false, base})

	tests := []struct {
		name  string
		arg   ListPublishedParams
		slugs []string
	}{
		{"default newest first", ListPublishedParams{Limit: 60}, []string{"fully-present", "evening-calm", "morning-focus"}},
		{"ascending", ListPublishedParams{Sort: "asc", Limit: 60}, []string{"morning-focus", "evening-calm", "fully-present"}},
		{"limit", ListPublishedParams{Limit: 1}, []string{"fully-present"}},
		{"query is case-insensitive on title", ListPublishedParams{Query: "CALM", Limit: 60}, []string{"evening-calm"}},
		{"query matches slug", ListPublishedParams{Query: "morning-", Limit: 60}, []string{"morning-focus"}},
		{"percent is literal", ListPublishedParams{Query: "%", Limit: 60}, []string{"fully-present"}},
		{"underscore is literal", ListPublishedParams{Query: "_", Limit: 60}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := q.ListPublishedArticles(ctx, tt.arg)
			if err != nil {
				t.Fatalf("ListPublishedArticles: %v", err)
			}
			if len(rows) != len(tt.slugs) {
				t.Fatalf("got %d rows, want %d", len(rows), len(tt.slugs))
			}
			for i, r := range rows {
				if r.Article.Slug != tt.slugs[i] {
					t.Errorf("row %d slug = %q, want %q", i, r.Article.Slug, tt.slugs[i])
				}
				if r.AuthorName != "Test Author" {
					t.Errorf("AuthorName = %q", r.AuthorName)
				}
			}
		})
	}
}

func TestGetPublishedArticleHidesDrafts(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	author := createTestUser(t, q, "a@example.com")
	draft := createTestArticle(t, q, author.ID, articleFixture{"Draft", "draft", "DRAFT", true, time.Time{}})
	live := createTestArticle(t, q, author.ID, articleFixture{"Live", "live", "PUBLISHED", true, time.Now().UTC()})

	if _, err := q.GetPublishedArticle(ctx, draft.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("draft lookup error = %v, want sql.ErrNoRows", err)
	}
	got, err := q.GetPublishedArticle(ctx, live.ID)
	if err != nil {
		t.Fatalf("GetPublishedArticle: %v", err)
	}
	if got.CategoryName.Valid {
		t.Error("article without category should have NULL category name")
	}

	related, err := q.ListRelatedArticles(ctx, live.ID, 3)
	if err != nil {
		t.Fatalf("ListRelatedArticles: %v", err)
	}
	if len(related) != 0 {
		t.Errorf("related = %d, want 0", len(related))
	}
}

func TestListAdminArticles(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	alice := createTestUser(t, q, "alice@example.com")
	bob := createTestUser(t, q, "bob@example.com")
	createTestArticle(t, q, alice.ID, articleFixture{"Alice Draft", "alice-draft", "DRAFT", true, time.Time{}})
	createTestArticle(t, q, alice.ID, articleFixture{"Alice Live", "alice-live", "PUBLISHED", true, time.Now().UTC()})
	createTestArticle(t, q, bob.ID, articleFixture{"Bob Draft", "bob-draft", "DRAFT", false, time.Time{}})

	tests := []struct {
		name string
		arg  ListAdminParams
		want int
	}{
		{"all", ListAdminParams{Limit: 50}, 3},
		{"by author", ListAdminParams{AuthorID: alice.ID, Limit: 50}, 2},
		{"by status", ListAdminParams{Status: "DRAFT", Limit: 50}, 2},
		{"author and status", ListAdminParams{AuthorID: bob.ID, Status: "DRAFT", Limit: 50}, 1},
		{"query", ListAdminParams{Query: "live", Limit: 50}, 1},
		{"limit", ListAdminParams{Limit: 2}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := q.ListAdminArticles(ctx, tt.arg)
			if err != nil {
				t.Fatalf("ListAdminArticles: %v", err)
			}
			if len(rows) != tt.want {
				t.Errorf("got %d rows, want %d", len(rows), tt.want)
			}
		})
	}
}

func TestListPublishedEvents(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()
	base := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)

	events := []struct {
		slug   string
		online bool
		start  time.Time
		status string
	}{
		{"retreat", false, base.Add(72 * time.Hour), "PUBLISHED"},
		{"webinar", true, base, "PUBLISHED"},
		{"satsang", false, base.Add(24 * time.Hour), "PUBLISHED"},
		{"planned", true, base, "DRAFT"},
	}
	for _, e := range events {
		if _, err := q.CreateEvent(ctx, CreateEventParams{
			ID: NewID(), Title: e.slug, Slug: e.slug, Description: "d",
			IsOnline: e.online, StartDate: e.start, Status: e.status, IsEnabled: true,
			CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	tests := []struct {
		name  string
		arg   ListPublishedEventsParams
		slugs []string
	}{
		{"ascending by default", ListPublishedEventsParams{Limit: 60}, []string{"webinar", "satsang", "retreat"}},
		{"descending", ListPublishedEventsParams{Sort: "desc", Limit: 60}, []string{"retreat", "satsang", "webinar"}},
		{"online", ListPublishedEventsParams{Mode: "online", Limit: 60}, []string{"webinar"}},
		{"offline", ListPublishedEventsParams{Mode: "offline", Limit: 60}, []string{"satsang", "retreat"}},
		{"unknown mode matches all", ListPublishedEventsParams{Mode: "hybrid", Limit: 60}, []string{"webinar", "satsang", "retreat"}},
		{"query", ListPublishedEventsParams{Query: "sats", Limit: 60}, []string{"satsang"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := q.ListPublishedEvents(ctx, tt.arg)
			if err != nil {
				t.Fatalf("ListPublishedEvents: %v", err)
			}
			if len(rows) != len(tt.slugs) {
				t.Fatalf("got %d rows, want %d", len(rows), len(tt.slugs))
			}
			for i, r := range rows {
				if r.Slug != tt.slugs[i] {
					t.Errorf("row %d = %q, want %q", i, r.Slug, tt.slugs[i])
				}
			}
		})
	}
}

func TestMagazineIssuesAndHighlights(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	issues := []struct {
		slug  string
		month int64
		year  int64
		url   string
	}{
		{"nov-2025", 11, 2025, ""},
		{"jan-2026", 1, 2026, "https://res.cloudinary.com/demo/image/upload/v1/jan.pdf"},
		{"feb-2026", 2, 2026, "https://heyzine.com/flip-book/02634fdaa6.html"},
	}
	ids := map[string]string{}
	for _, is := range issues {
		row, err := q.CreateMagazineIssue(ctx, CreateMagazineIssueParams{
			ID: NewID(), Title: is.slug, Slug: is.slug, Month: is.month, Year: is.year,
			CoverImage: "https://example.com/c.jpg", FlipbookUrl: is.url,
			Status: "PUBLISHED", IsEnabled: true, CreatedAt: now, UpdatedAt: now,
		})
		if err != nil {
			t.Fatalf("CreateMagazineIssue: %v", err)
		}
		ids[is.slug] = row.ID
	}

	rows, err := q.ListPublishedMagazineIssues(ctx, ListPublishedMagazineIssuesParams{Limit: 60})
	if err != nil {
		t.Fatalf("ListPublishedMagazineIssues: %v", err)
	}
	want := []string{"feb-2026", "jan-2026", "nov-2025"}
	for i, r := range rows {
		if r.Slug != want[i] {
			t.Errorf("row %d = %q, want %q", i, r.Slug, want[i])
		}
	}

	rows, err = q.ListPublishedMagazineIssues(ctx, ListPublishedMagazineIssuesParams{Year: 2025, Limit: 60})
	if err != nil {
		t.Fatalf("ListPublishedMagazineIssues(year): %v", err)
	}
	if len(rows) != 1 || rows[0].Slug != "nov-2025" {
		t.Errorf("year filter = %+v", rows)
	}

	flip, err := q.ListFlipbookIssues(ctx)
	if err != nil {
		t.Fatalf("ListFlipbookIssues: %v", err)
	}
	if len(flip) != 2 {
		t.Errorf("flipbook issues = %d, want 2", len(flip))
	}

	issueID := ids["jan-2026"]
	for i, title := range []string{"Second", "First"} {
		if _, err := q.CreateMagazineHighlight(ctx, CreateMagazineHighlightParams{
			ID: NewID(), IssueID: issueID, Title: title, Position: int64(1 - i),
		}); err != nil {
			t.Fatalf("CreateMagazineHighlight: %v", err)
		}
	}
	hl, err := q.ListMagazineHighlights(ctx, issueID)
	if err != nil {
		t.Fatalf("ListMagazineHighlights: %v", err)
	}
	if len(hl) != 2 || hl[0].Title != "First" {
		t.Errorf("highlights = %+v", hl)
	}

	if n, err := q.DeleteMagazineIssue(ctx, issueID); err != nil || n != 1 {
		t.Fatalf("DeleteMagazineIssue = %d, %v", n, err)
	}
	hl, _ = q.ListMagazineHighlights(ctx, issueID)
	if len(hl) != 0 {
		t.Errorf("highlights should cascade, got %d", len(hl))
	}
}

func TestListEnabledPressItems(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	items := []struct {
		title   string
		source  string
		enabled bool
	}{
		{"Calm in the city", "Metro Times", true},
		{"Quiet revolution", "The Hindu", true},
		{"Removed", "Metro Times", false},
	}
	for i, it := range items {
		if _, err := q.CreatePressItem(ctx, CreatePressItemParams{
			ID: NewID(), Title: it.title,
			Source:      sql.NullString{String: it.source, Valid: true},
			PublishedAt: sql.NullTime{Time: now.Add(time.Duration(i) * time.Hour), Valid: true},
			IsEnabled:   it.enabled, CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			t.Fatalf("CreatePressItem: %v", err)
		}
	}

	rows, err := q.ListEnabledPressItems(ctx, ListPublishedParams{Query: "metro", Limit: 60})
	if err != nil {
		t.Fatalf("ListEnabledPressItems: %v", err)
	}
	if len(rows) != 1 || rows[0].Title != "Calm in the city" {
		t.Errorf("source query = %+v", rows)
	}

	rows, err = q.ListEnabledPressItems(ctx, ListPublishedParams{Limit: 60})
	if err != nil {
		t.Fatalf("ListEnabledPressItems: %v", err)
	}
	if len(rows) != 2 || rows[0].Title != "Quiet revolution" {
		t.Errorf("default order = %+v", rows)
	}
}

func TestAuditLog(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)
	now := time.Now().UTC()

	for i, age := range []time.Duration{0, 48 * time.Hour} {
		if _, err := q.CreateAuditLog(ctx, CreateAuditLogParams{
			Level: "warning", Category: "system", Message: "m", Metadata: "{}",
			CreatedAt: now.Add(-age).Add(time.Duration(i) * time.Millisecond),
		}); err != nil {
			t.Fatalf("CreateAuditLog: %v", err)
		}
	}

	n, err := q.DeleteOldAuditLogs(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteOldAuditLogs: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}
	logs, err := q.ListAuditLogs(ctx, 10)
	if err != nil {
		t.Fatalf("ListAuditLogs: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("remaining = %d, want 1", len(logs))
	}
}

func TestSeedAdmin(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	seed := AdminSeed{Email: "admin@anandda.example", Password: "a-long-password", Name: "Admin"}
	if err := SeedAdmin(ctx, db, seed); err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}
	if err := SeedAdmin(ctx, db, seed); err != nil {
		t.Fatalf("SeedAdmin second run: %v", err)
	}

	q := New(db)
	count, err := q.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if count != 1 {
		t.Errorf("CountUsers = %d, want 1", count)
	}
	user, err := q.GetUserByEmail(ctx, seed.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if user.Role != "ADMIN" {
		t.Errorf("Role = %q, want ADMIN", user.Role)
	}

	if err := SeedAdmin(ctx, db, AdminSeed{}); err != nil {
		t.Errorf("SeedAdmin with empty email: %v", err)
	}
}

func TestSeedDemo(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	if err := SeedDemo(ctx, db); err != nil {
		t.Fatalf("SeedDemo: %v", err)
	}
	if err := SeedDemo(ctx, db); err != nil {
		t.Fatalf("SeedDemo second run: %v", err)
	}

	articles, _ := q.CountArticles(ctx)
	blogs, _ := q.CountBlogs(ctx)
	events, _ := q.CountEvents(ctx)
	issues, _ := q.CountMagazineIssues(ctx)
	press, _ := q.CountPressItems(ctx)
	if articles != 2 || blogs != 2 || events != 2 || issues != 1 || press != 1 {
		t.Errorf("counts = articles %d, blogs %d, events %d, issues %d, press %d",
			articles, blogs, events, issues, press)
	}
}
