package model

import "time"

// Ref names a related row, such as an author or a category.
type Ref struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Tag labels articles and blogs.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Category groups articles and blogs.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// Article is a long-form magazine piece.
type Article struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Standfirst    string     `json:"standfirst"`
	Content       string     `json:"content"`
	FeaturedImage string     `json:"featuredImage"`
	Status        Status     `json:"status"`
	IsEnabled     bool       `json:"isEnabled"`
	AuthorID      string     `json:"authorId"`
	CategoryID    *string    `json:"categoryId"`
	Author        *Ref       `json:"author,omitempty"`
	Category      *Ref       `json:"category,omitempty"`
	Tags          []Tag      `json:"tags,omitempty"`
	PublishedAt   *time.Time `json:"publishedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Blog is a shorter post with an optional excerpt.
type Blog struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	FeaturedImage *string    `json:"featuredImage"`
	Status        Status     `json:"status"`
	IsEnabled     bool       `json:"isEnabled"`
	AuthorID      string     `json:"authorId"`
	CategoryID    *string    `json:"categoryId"`
	Author        *Ref       `json:"author,omitempty"`
	Category      *Ref       `json:"category,omitempty"`
	Tags          []Tag      `json:"tags,omitempty"`
	PublishedAt   *time.Time `json:"publishedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Event is a scheduled gathering, online or in person.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	BannerImage *string    `json:"bannerImage"`
	Location    *string    `json:"location"`
	IsOnline    bool       `json:"isOnline"`
	EventURL    *string    `json:"eventUrl"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Status      Status     `json:"status"`
	IsEnabled   bool       `json:"isEnabled"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Highlight is a featured piece inside a magazine issue.
type Highlight struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Summary  *string `json:"summary"`
	Position int     `json:"position"`
}

// MagazineIssue is a monthly edition with a flipbook or PDF.
type MagazineIssue struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Theme       *string     `json:"theme"`
	Month       int         `json:"month"`
	Year        int         `json:"year"`
	CoverImage  string      `json:"coverImage"`
	Description *string     `json:"description"`
	FlipbookURL string      `json:"flipbookUrl"`
	PdfURL      *string     `json:"pdfUrl"`
	Status      Status      `json:"status"`
	IsEnabled   bool        `json:"isEnabled"`
	Highlights  []Highlight `json:"highlights,omitempty"`
	PublishedAt *time.Time  `json:"publishedAt"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// PressItem is an external press mention, served publicly as a post.
type PressItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Source      *string    `json:"source"`
	Link        *string    `json:"link"`
	Logo        *string    `json:"logo"`
	PublishedAt *time.Time `json:"publishedAt"`
	IsEnabled   bool       `json:"isEnabled"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SpecialIssue is a hand-picked edition hosted on an external flipbook.
type SpecialIssue struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IssueDate   string `json:"issueDate"`
	Description string `json:"description"`
	FlipbookURL string `json:"flipbookUrl"`
}
