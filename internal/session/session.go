// Package session configures the cookie session manager used by the
// login and the admin gate.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Lifetime is how long a signed-in session lasts.
const Lifetime = 24 * time.Hour

// New creates a new session manager configured with SQLite store.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	sm.Store = sqlite3store.New(db)

	sm.Lifetime = Lifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Secure = !isDev

	// The __Host- prefix pins the cookie to this host and requires Secure.
	if !isDev {
		sm.Cookie.Name = "__Host-session"
	}

	return sm
}
