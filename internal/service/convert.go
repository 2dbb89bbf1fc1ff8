package service

import (
	"github.com/anandda/magazine/internal/media"
	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/richtext"
	"github.com/anandda/magazine/internal/store"
	"github.com/anandda/magazine/internal/util"
)

func assetPtr(v *string) *string {
	if v == nil {
		return nil
	}
	u := media.NormalizeAssetURL(*v)
	if u == "" {
		return nil
	}
	return &u
}

func toTags(tags []store.Tag) []model.Tag {
	out := make([]model.Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, model.Tag{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	return out
}

func toCategory(c store.Category) model.Category {
	return model.Category{ID: c.ID, Name: c.Name, Slug: c.Slug, CreatedAt: c.CreatedAt}
}

func toArticle(a store.Article) model.Article {
	return model.Article{
		ID:            a.ID,
		Title:         a.Title,
		Slug:          a.Slug,
		Standfirst:    a.Standfirst,
		Content:       a.Content,
		FeaturedImage: a.FeaturedImage,
		Status:        model.Status(a.Status),
		IsEnabled:     a.IsEnabled,
		AuthorID:      a.AuthorID,
		CategoryID:    util.StringPtr(a.CategoryID),
		PublishedAt:   util.TimePtr(a.PublishedAt),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// publicArticle renders the body and fills the standfirst from it when empty.
func publicArticle(a store.Article) model.Article {
	out := toArticle(a)
	out.Content = richtext.Normalize(a.Content, "")
	if out.Standfirst == "" {
		out.Standfirst = richtext.Snippet(out.Content, richtext.DefaultSnippetLength)
	}
	out.FeaturedImage = media.NormalizeAssetURL(a.FeaturedImage)
	return out
}

func publicArticleWithRefs(a store.ArticleWithRefs) model.Article {
	out := publicArticle(a.Article)
	out.Author = &model.Ref{ID: a.Article.AuthorID, Name: a.AuthorName}
	if a.CategoryName.Valid {
		out.Category = &model.Ref{ID: a.Article.CategoryID.String, Name: a.CategoryName.String}
	}
	return out
}

func toBlog(b store.Blog) model.Blog {
	return model.Blog{
		ID:            b.ID,
		Title:         b.Title,
		Slug:          b.Slug,
		Excerpt:       b.Excerpt.String,
		Content:       b.Content,
		FeaturedImage: util.StringPtr(b.FeaturedImage),
		Status:        model.Status(b.Status),
		IsEnabled:     b.IsEnabled,
		AuthorID:      b.AuthorID,
		CategoryID:    util.StringPtr(b.CategoryID),
		PublishedAt:   util.TimePtr(b.PublishedAt),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// publicBlog renders the body and fills the excerpt from it when empty.
func publicBlog(b store.Blog) model.Blog {
	out := toBlog(b)
	out.Content = richtext.Normalize(b.Content, "")
	if out.Excerpt == "" {
		out.Excerpt = richtext.Snippet(out.Content, richtext.DefaultSnippetLength)
	}
	out.FeaturedImage = assetPtr(out.FeaturedImage)
	return out
}

func publicBlogWithRefs(b store.BlogWithRefs) model.Blog {
	out := publicBlog(b.Blog)
	out.Author = &model.Ref{ID: b.Blog.AuthorID, Name: b.AuthorName}
	if b.CategoryName.Valid {
		out.Category = &model.Ref{ID: b.Blog.CategoryID.String, Name: b.CategoryName.String}
	}
	return out
}

func toEvent(e store.Event) model.Event {
	return model.Event{
		ID:          e.ID,
		Title:       e.Title,
		Slug:        e.Slug,
		Description: e.Description,
		BannerImage: util.StringPtr(e.BannerImage),
		Location:    util.StringPtr(e.Location),
		IsOnline:    e.IsOnline,
		EventURL:    util.StringPtr(e.EventUrl),
		StartDate:   e.StartDate,
		EndDate:     util.TimePtr(e.EndDate),
		Status:      model.Status(e.Status),
		IsEnabled:   e.IsEnabled,
		PublishedAt: util.TimePtr(e.PublishedAt),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func publicEvent(e store.Event) model.Event {
	out := toEvent(e)
	out.Description = richtext.Normalize(e.Description, "")
	out.BannerImage = assetPtr(out.BannerImage)
	return out
}

func toMagazineIssue(m store.MagazineIssue) model.MagazineIssue {
	return model.MagazineIssue{
		ID:          m.ID,
		Title:       m.Title,
		Slug:        m.Slug,
		Theme:       util.StringPtr(m.Theme),
		Month:       int(m.Month),
		Year:        int(m.Year),
		CoverImage:  m.CoverImage,
		Description: util.StringPtr(m.Description),
		FlipbookURL: m.FlipbookUrl,
		PdfURL:      util.StringPtr(m.PdfUrl),
		Status:      model.Status(m.Status),
		IsEnabled:   m.IsEnabled,
		PublishedAt: util.TimePtr(m.PublishedAt),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func publicMagazineIssue(m store.MagazineIssue) model.MagazineIssue {
	out := toMagazineIssue(m)
	out.CoverImage = media.NormalizeAssetURL(m.CoverImage)
	out.FlipbookURL = media.NormalizeAssetURL(m.FlipbookUrl)
	out.PdfURL = assetPtr(out.PdfURL)
	return out
}

func toHighlights(hs []store.MagazineHighlight) []model.Highlight {
	out := make([]model.Highlight, 0, len(hs))
	for _, h := range hs {
		out = append(out, model.Highlight{
			ID:       h.ID,
			Title:    h.Title,
			Summary:  util.StringPtr(h.Summary),
			Position: int(h.Position),
		})
	}
	return out
}

func toPressItem(p store.PressItem) model.PressItem {
	return model.PressItem{
		ID:          p.ID,
		Title:       p.Title,
		Source:      util.StringPtr(p.Source),
		Link:        util.StringPtr(p.Link),
		Logo:        util.StringPtr(p.Logo),
		PublishedAt: util.TimePtr(p.PublishedAt),
		IsEnabled:   p.IsEnabled,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func publicPressItem(p store.PressItem) model.PressItem {
	out := toPressItem(p)
	out.Logo = assetPtr(out.Logo)
	return out
}

// mapAll converts a slice with fn.
func mapAll[S, D any](in []S, fn func(S) D) []D {
	out := make([]D, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
