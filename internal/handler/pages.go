package handler

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/anandda/magazine/internal/render"
)

// staticPage is a Markdown page rendered once at startup.
type staticPage struct {
	title string
	body  template.HTML
}

// PagesHandler serves the about, offerings and contact pages.
type PagesHandler struct {
	renderer *render.Renderer
	pages    map[string]staticPage
}

// staticPageTitles maps a page name (and its .md file) to its title.
var staticPageTitles = map[string]string{
	"about":     "About Anandda",
	"offerings": "Offerings",
	"contact":   "Contact",
}

// NewPagesHandler renders every page in pagesFS. pagesFS holds pages/<name>.md.
func NewPagesHandler(renderer *render.Renderer, pagesFS fs.FS) (*PagesHandler, error) {
	h := &PagesHandler{renderer: renderer, pages: make(map[string]staticPage, len(staticPageTitles))}
	for name, title := range staticPageTitles {
		src, err := fs.ReadFile(pagesFS, "pages/"+name+".md")
		if err != nil {
			return nil, fmt.Errorf("reading page %s: %w", name, err)
		}
		body, err := renderer.Markdown(src)
		if err != nil {
			return nil, fmt.Errorf("rendering page %s: %w", name, err)
		}
		h.pages[name] = staticPage{title: title, body: body}
	}
	return h, nil
}

// Names lists the served page names.
func (h *PagesHandler) Names() []string {
	names := make([]string, 0, len(h.pages))
	for name := range h.pages {
		names = append(names, name)
	}
	return names
}

// Page returns the handler for GET /<name>.
func (h *PagesHandler) Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, ok := h.pages[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		data := render.TemplateData{Title: page.title, Data: page.body}
		if err := h.renderer.Render(w, r, http.StatusOK, "pages/page", data); err != nil {
			slog.Error("rendering page", "page", name, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}
