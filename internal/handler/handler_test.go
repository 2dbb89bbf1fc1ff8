package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/anandda/magazine/internal/middleware"
	"github.com/anandda/magazine/internal/model"
	"github.com/anandda/magazine/internal/render"
	"github.com/anandda/magazine/internal/testutil"
	"github.com/anandda/magazine/web"
)

const testPassword = "correct horse battery"

type testEnv struct {
	db       *sql.DB
	sm       *scs.SessionManager
	renderer *render.Renderer
	lp       *middleware.LoginProtection
	router   chi.Router
}

// newTestEnv builds a router with sessions and the login routes mounted.
// Extra routes can be added to env.router by the caller.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	sm := scs.New()
	renderer, err := render.New(render.Config{TemplatesFS: web.Templates, SessionManager: sm, IsDev: true})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       1000,
		IPBurst:           1000,
		MaxFailedAttempts: 3,
	})
	t.Cleanup(lp.Close)

	authHandler := NewAuthHandler(db, renderer, sm, lp)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Use(middleware.LoadUser(sm, db))
	r.Get(RouteLogin, authHandler.LoginForm)
	r.Post(RouteLogin, authHandler.Login)
	r.Post(RouteLogout, authHandler.Logout)
	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		if user := middleware.GetUser(r); user != nil {
			_, _ = w.Write([]byte(user.Email))
		}
	})

	return &testEnv{db: db, sm: sm, renderer: renderer, lp: lp, router: r}
}

// do sends a request carrying cookies. A non-nil form is posted urlencoded.
func (e *testEnv) do(t *testing.T, method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// login signs in and returns the session cookies.
func (e *testEnv) login(t *testing.T, email string) []*http.Cookie {
	t.Helper()
	rec := e.do(t, http.MethodPost, RouteLogin, url.Values{"email": {email}, "password": {testPassword}}, nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	return rec.Result().Cookies()
}

func createAdmin(t *testing.T, db *sql.DB) string {
	t.Helper()
	return testutil.CreateUser(t, db, "admin@example.com", testPassword, model.RoleAdmin).ID
}
