package store

import (
	"database/sql"
	"time"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Category struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
}

type Tag struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
}

type Article struct {
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

type Blog struct {
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

type Event struct {
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

type MagazineIssue struct {
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

type MagazineHighlight struct {
	ID       string
	IssueID  string
	Title    string
	Summary  sql.NullString
	Position int64
}

type PressItem struct {
	ID          string
	Title       string
	Source      sql.NullString
	Link        sql.NullString
	Logo        sql.NullString
	PublishedAt sql.NullTime
	IsEnabled   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type AuditLog struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}
