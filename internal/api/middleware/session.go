package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const (
	sessionCookieName = "cavemanlearn_session"
	sessionIDValue    = "sid"

	// cookieMaxAge is how long the browser keeps the session cookie.
	cookieMaxAge = 7 * 24 * 60 * 60
)

type contextKey struct{}

var sessionIDKey contextKey

// BrowserSessions issues and reads the signed session cookie. The cookie
// carries only an opaque session id; everything else lives server-side. The
// signature makes the id unforgeable, the payload stays out of reach either
// way.
type BrowserSessions struct {
	cookies *sessions.CookieStore
	logger  zerolog.Logger
}

// NewBrowserSessions creates the middleware. The secret signs cookies and must
// be at least 32 bytes; secure controls the cookie Secure flag and should only
// be false for local development.
func NewBrowserSessions(secret string, secure bool, logger zerolog.Logger) *BrowserSessions {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &BrowserSessions{cookies: store, logger: logger}
}

// Middleware ensures every request carries a session id, minting one on first
// contact, and exposes it via the request context.
func (b *BrowserSessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Get tolerates an invalid or tampered cookie by handing back a fresh
		// session, which is the behavior we want here.
		cookieSess, _ := b.cookies.Get(r, sessionCookieName)

		sid, _ := cookieSess.Values[sessionIDValue].(string)
		if sid == "" {
			sid = uuid.NewString()
			cookieSess.Values[sessionIDValue] = sid
			if err := cookieSess.Save(r, w); err != nil {
				b.logger.Error().Err(err).Msg("failed to save session cookie")
				http.Error(w, "could not establish session", http.StatusInternalServerError)
				return
			}
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the session id established by Middleware, or "" when the
// middleware did not run.
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDKey).(string)
	return sid
}
