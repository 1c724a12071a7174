// Package signin exposes the OAuth flow over HTTP. Failures are logged with
// their internal detail; the client only ever sees a short fixed message per
// failure kind, so provider or store errors never leak.
package signin

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/cavemanlearn/bff/internal/api/middleware"
	signinCore "github.com/cavemanlearn/bff/internal/core/signin"
	"github.com/cavemanlearn/bff/internal/github"
)

// Handler serves the two sign-in endpoints.
type Handler struct {
	flow   *signinCore.Service
	logger zerolog.Logger
}

// NewHandler creates a sign-in handler.
func NewHandler(flow *signinCore.Service, logger zerolog.Logger) *Handler {
	return &Handler{flow: flow, logger: logger}
}

// HandleStart begins the sign-in flow.
// GET /signin/start
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionID(r.Context())
	if sid == "" {
		http.Error(w, "could not establish session", http.StatusInternalServerError)
		return
	}

	authorizeURL, err := h.flow.Start(r.Context(), sid)
	if err != nil {
		h.fail(w, "start", err)
		return
	}

	// 307 keeps method and body intact; this is a GET so it behaves like any
	// other redirect, but it matches the provider's documented flow.
	http.Redirect(w, r, authorizeURL, http.StatusTemporaryRedirect)
}

// HandleCallback completes the sign-in flow.
// GET /signin/callback?code=...&state=...
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionID(r.Context())
	if sid == "" {
		http.Error(w, "could not establish session", http.StatusInternalServerError)
		return
	}

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		http.Error(w, "missing code or state parameter", http.StatusBadRequest)
		return
	}

	user, err := h.flow.Callback(r.Context(), sid, code, state)
	if err != nil {
		h.fail(w, "callback", err)
		return
	}

	// Accounts that never set a display name come back with a null name;
	// fall back to the login handle rather than answering with nothing.
	name := user.Name
	if name == "" {
		name = user.Login
	}

	// Placeholder response until a frontend route exists to redirect to.
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(name))
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	h.logger.Error().Err(err).Str("op", op).Msg("sign-in failed")
	http.Error(w, clientMessage(err), http.StatusInternalServerError)
}

// clientMessage maps each failure kind to a distinct, non-leaking message.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, signinCore.ErrNotConfigured):
		return "sign-in is not configured"
	case errors.Is(err, signinCore.ErrStateAbsent):
		return "no sign-in in progress"
	case errors.Is(err, signinCore.ErrStateMismatch):
		return "sign-in state did not match"
	case errors.Is(err, signinCore.ErrSessionRead):
		return "could not read session"
	case errors.Is(err, signinCore.ErrSessionWrite):
		return "could not update session"
	case errors.Is(err, github.ErrExchangeTransport):
		return "could not obtain access token"
	case errors.Is(err, github.ErrExchangeDecode):
		return "could not read access token response"
	case errors.Is(err, github.ErrUserTransport):
		return "could not fetch user profile"
	case errors.Is(err, github.ErrUserDecode):
		return "could not read user profile"
	default:
		return "sign-in failed"
	}
}
