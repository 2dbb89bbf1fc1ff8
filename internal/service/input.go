package service

import (
	"errors"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/util"
)

// MaxTags is the most tags kept on an article or blog.
const MaxTags = 20

// urlRule accepts absolute URLs and skips empty values.
type urlRule struct {
	message string
}

func (r urlRule) Validate(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return validation.NewError("validation_is_url", r.message)
	}
	return nil
}

func isURL(message string) validation.Rule {
	return urlRule{message: message}
}

var statusRule = validation.By(func(value any) error {
	if s, _ := value.(model.Status); !s.Valid() {
		return errors.New("Status is invalid.")
	}
	return nil
})

var slugRules = []validation.Rule{
	validation.Required.Error("Slug is required."),
	validation.Match(util.SlugPattern()).Error("Slug format is invalid."),
}

// dateLayouts are accepted for date and datetime form values. Values
// without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func enabled(v *bool) bool {
	return v == nil || *v
}

func defaultStatus(s model.Status) model.Status {
	if s == "" {
		return model.StatusDraft
	}
	return model.Status(strings.ToUpper(string(s)))
}

// ArticleInput is the admin payload for an article.
type ArticleInput struct {
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Standfirst    string       `json:"standfirst"`
	Content       string       `json:"content"`
	FeaturedImage string       `json:"featuredImage"`
	Status        model.Status `json:"status"`
	IsEnabled     *bool        `json:"isEnabled"`
	AuthorID      string       `json:"authorId"`
	CategoryID    string       `json:"categoryId"`
	Tags          []string     `json:"tags"`
}

func (in *ArticleInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Standfirst = strings.TrimSpace(in.Standfirst)
	in.Content = strings.TrimSpace(in.Content)
	in.FeaturedImage = strings.TrimSpace(in.FeaturedImage)
	in.Status = defaultStatus(in.Status)
	in.AuthorID = strings.TrimSpace(in.AuthorID)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.Tags = trimAll(in.Tags)
}

// Validate trims the input and checks every field.
func (in *ArticleInput) Validate() error {
	in.normalize()
	return validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required.Error("Title is required.")),
		validation.Field(&in.Slug, slugRules...),
		validation.Field(&in.Standfirst, validation.Required.Error("Standfirst is required.")),
		validation.Field(&in.Content, validation.Required.Error("Content is required.")),
		validation.Field(&in.FeaturedImage,
			validation.Required.Error("Featured image URL must be valid."),
			isURL("Featured image URL must be valid.")),
		validation.Field(&in.Status, statusRule),
		validation.Field(&in.AuthorID, validation.Required.Error("Author ID is required.")),
		validation.Field(&in.Tags,
			validation.Required.Error("At least one tag is required."),
			validation.Length(0, MaxTags).Error("A maximum of 20 tags is allowed."),
			validation.Each(validation.Required.Error("Tag cannot be empty."))),
	)
}

// BlogInput is the admin payload for a blog post.
type BlogInput struct {
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Excerpt       string       `json:"excerpt"`
	Content       string       `json:"content"`
	FeaturedImage string       `json:"featuredImage"`
	Status        model.Status `json:"status"`
	IsEnabled     *bool        `json:"isEnabled"`
	AuthorID      string       `json:"authorId"`
	CategoryID    string       `json:"categoryId"`
	Tags          []string     `json:"tags"`
}

func (in *BlogInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Excerpt = strings.TrimSpace(in.Excerpt)
	in.Content = strings.TrimSpace(in.Content)
	in.FeaturedImage = strings.TrimSpace(in.FeaturedImage)
	in.Status = defaultStatus(in.Status)
	in.AuthorID = strings.TrimSpace(in.AuthorID)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.Tags = trimAll(in.Tags)
}

// Validate trims the input and checks every field.
func (in *BlogInput) Validate() error {
	in.normalize()
	if in.Title == "" || in.Slug == "" || in.AuthorID == "" {
		return validation.Errors{"title": errors.New("Title, slug, and authorId are required.")}
	}
	return validation.ValidateStruct(in,
		validation.Field(&in.Slug, slugRules...),
		validation.Field(&in.Content, validation.Required.Error("Content is required.")),
		validation.Field(&in.FeaturedImage, isURL("URL must be valid.")),
		validation.Field(&in.Status, statusRule),
		validation.Field(&in.Tags,
			validation.Length(0, MaxTags).Error("A maximum of 20 tags is allowed."),
			validation.Each(validation.Required.Error("Tag cannot be empty."))),
	)
}

// EventInput is the admin payload for an event. Dates are strings as
// submitted by forms.
type EventInput struct {
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	BannerImage string       `json:"bannerImage"`
	Location    string       `json:"location"`
	IsOnline    bool         `json:"isOnline"`
	EventURL    string       `json:"eventUrl"`
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	Status      model.Status `json:"status"`
	IsEnabled   *bool        `json:"isEnabled"`
}

func (in *EventInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Description = strings.TrimSpace(in.Description)
	in.BannerImage = strings.TrimSpace(in.BannerImage)
	in.Location = strings.TrimSpace(in.Location)
	in.EventURL = strings.TrimSpace(in.EventURL)
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)
	in.Status = defaultStatus(in.Status)
}

// Validate trims the input and checks every field, including the
// ordering of start and end dates.
func (in *EventInput) Validate() error {
	in.normalize()
	return validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required.Error("Title is required.")),
		validation.Field(&in.Slug, slugRules...),
		validation.Field(&in.Description, validation.Required.Error("Description is required.")),
		validation.Field(&in.BannerImage, isURL("URL must be valid.")),
		validation.Field(&in.EventURL,
			validation.When(in.IsOnline, validation.Required.Error("Online events require an event URL.")),
			isURL("URL must be valid.")),
		validation.Field(&in.StartDate,
			validation.Required.Error("Start date is required."),
			validation.By(func(any) error {
				if _, err := parseDate(in.StartDate); err != nil {
					return errors.New("Start date is invalid.")
				}
				return nil
			})),
		validation.Field(&in.EndDate, validation.By(func(any) error {
			if in.EndDate == "" {
				return nil
			}
			end, err := parseDate(in.EndDate)
			if err != nil {
				return errors.New("End date is invalid.")
			}
			if start, err := parseDate(in.StartDate); err == nil && end.Before(start) {
				return errors.New("End date cannot be earlier than start date.")
			}
			return nil
		})),
		validation.Field(&in.Status, statusRule),
	)
}

// dates returns the parsed start and optional end. Call after Validate.
func (in *EventInput) dates() (time.Time, *time.Time) {
	start, _ := parseDate(in.StartDate)
	if in.EndDate == "" {
		return start, nil
	}
	end, _ := parseDate(in.EndDate)
	return start, &end
}

// HighlightInput is one featured piece of a magazine issue.
type HighlightInput struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Validate implements validation.Validatable.
func (h HighlightInput) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Title, validation.Required.Error("Highlight title is required.")),
	)
}

// MagazineInput is the admin payload for a magazine issue.
type MagazineInput struct {
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	Theme       string           `json:"theme"`
	Month       int              `json:"month"`
	Year        int              `json:"year"`
	CoverImage  string           `json:"coverImage"`
	Description string           `json:"description"`
	FlipbookURL string           `json:"flipbookUrl"`
	PdfURL      string           `json:"pdfUrl"`
	Status      model.Status     `json:"status"`
	IsEnabled   *bool            `json:"isEnabled"`
	Highlights  []HighlightInput `json:"highlights"`
}

func (in *MagazineInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Theme = strings.TrimSpace(in.Theme)
	in.CoverImage = strings.TrimSpace(in.CoverImage)
	in.Description = strings.TrimSpace(in.Description)
	in.FlipbookURL = strings.TrimSpace(in.FlipbookURL)
	in.PdfURL = strings.TrimSpace(in.PdfURL)
	in.Status = defaultStatus(in.Status)
	for i := range in.Highlights {
		in.Highlights[i].Title = strings.TrimSpace(in.Highlights[i].Title)
		in.Highlights[i].Summary = strings.TrimSpace(in.Highlights[i].Summary)
	}
}

// Validate trims the input and checks every field.
func (in *MagazineInput) Validate() error {
	in.normalize()
	return validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required.Error("Title is required.")),
		validation.Field(&in.Slug, slugRules...),
		validation.Field(&in.Month,
			validation.Required.Error("Month must be between 1 and 12."),
			validation.Min(1).Error("Month must be between 1 and 12."),
			validation.Max(12).Error("Month must be between 1 and 12.")),
		validation.Field(&in.Year,
			validation.Required.Error("Year must be valid."),
			validation.Min(1900).Error("Year must be valid."),
			validation.Max(2100).Error("Year must be valid.")),
		validation.Field(&in.CoverImage,
			validation.Required.Error("Cover image URL must be valid."),
			isURL("Cover image URL must be valid.")),
		validation.Field(&in.FlipbookURL,
			validation.Required.Error("Flipbook URL must be valid."),
			isURL("Flipbook URL must be valid.")),
		validation.Field(&in.PdfURL, isURL("URL must be valid.")),
		validation.Field(&in.Status, statusRule),
		validation.Field(&in.Highlights),
	)
}

// PressInput is the admin payload for a press item.
type PressInput struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	Link        string `json:"link"`
	Logo        string `json:"logo"`
	PublishedAt string `json:"publishedAt"`
	IsEnabled   *bool  `json:"isEnabled"`
}

// Validate trims the input and checks every field.
func (in *PressInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Source = strings.TrimSpace(in.Source)
	in.Link = strings.TrimSpace(in.Link)
	in.Logo = strings.TrimSpace(in.Logo)
	in.PublishedAt = strings.TrimSpace(in.PublishedAt)

	return validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required.Error("Title is required.")),
		validation.Field(&in.Link, isURL("URL must be valid.")),
		validation.Field(&in.Logo, isURL("URL must be valid.")),
		validation.Field(&in.PublishedAt, validation.By(func(any) error {
			if in.PublishedAt == "" {
				return nil
			}
			if _, err := parseDate(in.PublishedAt); err != nil {
				return errors.New("Published date is invalid.")
			}
			return nil
		})),
	)
}

func (in *PressInput) publishedAt() *time.Time {
	if in.PublishedAt == "" {
		return nil
	}
	t, err := parseDate(in.PublishedAt)
	if err != nil {
		return nil
	}
	return &t
}

// TaxonomyInput names a tag or category. An empty slug is derived from
// the name.
type TaxonomyInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Validate trims the input, fills the slug and checks both fields.
func (in *TaxonomyInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = util.Slugify(in.Name)
	}
	return validation.ValidateStruct(in,
		validation.Field(&in.Name, validation.Required.Error("Name is required.")),
		validation.Field(&in.Slug, slugRules...),
	)
}
