package handler

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anandda/magazine/internal/render"
	"github.com/anandda/magazine/web"
)

func TestPagesHandler(t *testing.T) {
	renderer, err := render.New(render.Config{TemplatesFS: web.Templates, IsDev: true})
	require.NoError(t, err)
	h, err := NewPagesHandler(renderer, web.Pages)
	require.NoError(t, err)

	names := h.Names()
	sort.Strings(names)
	assert.Equal(t, []string{"about", "contact", "offerings"}, names)

	rec := httptest.NewRecorder()
	h.Page("about")(rec, httptest.NewRequest(http.MethodGet, "/about", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>About Anandda | Anandda</title>")
	assert.Contains(t, body, "<h1>About Anandda</h1>")

	rec = httptest.NewRecorder()
	h.Page("missing")(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPagesHandlerMissingFile(t *testing.T) {
	renderer, err := render.New(render.Config{TemplatesFS: web.Templates})
	require.NoError(t, err)

	fsys := fstest.MapFS{"pages/about.md": {Data: []byte("# About")}}
	_, err = NewPagesHandler(renderer, fsys)
	assert.Error(t, err)
}
