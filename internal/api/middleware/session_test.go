package middleware

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestSessionMiddleware(t *testing.T) {
	sessions := NewBrowserSessions(testSecret, false, zerolog.Nop())

	var seen []string
	handler := sessions.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, SessionID(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	server := httptest.NewServer(handler)
	defer server.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	// First contact mints an id and sets the cookie.
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Len(t, seen, 1)
	assert.NotEmpty(t, seen[0])

	serverURL, _ := url.Parse(server.URL)
	require.NotEmpty(t, jar.Cookies(serverURL))

	// Subsequent requests carry the same id.
	resp, err = client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Len(t, seen, 2)
	assert.Equal(t, seen[0], seen[1])
}

func TestSessionMiddlewareDistinctBrowsers(t *testing.T) {
	sessions := NewBrowserSessions(testSecret, false, zerolog.Nop())

	var seen []string
	handler := sessions.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, SessionID(r.Context()))
	}))

	server := httptest.NewServer(handler)
	defer server.Close()

	// Two clients without shared cookies get distinct ids.
	for i := 0; i < 2; i++ {
		resp, err := http.Get(server.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}
	require.Len(t, seen, 2)
	assert.NotEqual(t, seen[0], seen[1])
}

func TestSessionMiddlewareTamperedCookie(t *testing.T) {
	sessions := NewBrowserSessions(testSecret, false, zerolog.Nop())

	var sid string
	handler := sessions.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid = SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	// A forged cookie is discarded and replaced with a fresh session.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, sid)
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))
}

func TestSessionIDWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, SessionID(req.Context()))
}
