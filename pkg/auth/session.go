package auth

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
)

// Store is the cookie-based session store for browser state that outlives a
// single request (currently only the signed-in marker cleared on sign-out).
var Store *sessions.CookieStore

// SessionName is the name of the browser session cookie.
const SessionName = "mindgrate-session"

// InitSessionStore initializes the cookie-based session store.
//
// The secret parameter signs session cookies. It can be any passphrase - it
// is SHA-256 hashed to derive a 32-byte key. The secret must be consistent
// across server restarts and multiple servers behind a load balancer.
//
// Security settings:
// - HttpOnly: true (inaccessible to JavaScript)
// - Secure: true (HTTPS only in production)
// - SameSite: Strict (prevents CSRF)
func InitSessionStore(secret string) {
	key := sha256.Sum256([]byte(secret))

	Store = sessions.NewCookieStore(key[:])
	Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // one week
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

// GetSession retrieves the browser session from the request.
// Creates a new session if one doesn't exist.
func GetSession(r *http.Request) (*sessions.Session, error) {
	return Store.Get(r, SessionName)
}

// ClearSession expires the session so the browser drops it. Called on
// sign-out together with clearing the JWT cookie.
func ClearSession(r *http.Request, w http.ResponseWriter) error {
	session, err := Store.Get(r, SessionName)
	if err != nil {
		return err
	}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
