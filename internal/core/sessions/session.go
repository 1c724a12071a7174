// Package sessions models the per-browser server-side session and the store
// that holds it. The payload is a small state machine rather than a string
// bag: a session is either empty, waiting for an OAuth callback, or holding
// an access token. Shapes outside those three are unrepresentable.
package sessions

import (
	"errors"
	"time"
)

// ErrNotFound is returned by stores when no session exists for an id.
var ErrNotFound = errors.New("session not found")

// Phase names the state a session is in.
type Phase string

const (
	// PhaseEmpty is a fresh session, or one whose pending sign-in was consumed.
	PhaseEmpty Phase = "empty"
	// PhasePendingAuth holds a CSRF state token between start and callback.
	PhasePendingAuth Phase = "pending_auth"
	// PhaseAuthenticated holds the access token obtained on callback.
	PhaseAuthenticated Phase = "authenticated"
)

// Session is the server-side payload for one browser session. The ID is the
// opaque value carried by the signed cookie; the client never sees the rest.
type Session struct {
	ID        string    `json:"id"`
	Phase     Phase     `json:"phase"`
	UpdatedAt time.Time `json:"updated_at"`

	// OAuthState is set only in PhasePendingAuth.
	OAuthState string `json:"oauth_state,omitempty"`
	// AccessToken is set only in PhaseAuthenticated.
	AccessToken string `json:"access_token,omitempty"`
}

// New returns an empty session for the given id.
func New(id string) *Session {
	return &Session{ID: id, Phase: PhaseEmpty, UpdatedAt: time.Now()}
}

// BeginAuth moves the session to PhasePendingAuth with a fresh state token,
// discarding any previous pending state or access token. Two overlapping
// starts for the same browser race last-writer-wins; each flow carries its
// own state token so the callback simply has to match whichever write won.
func (s *Session) BeginAuth(state string) {
	s.Phase = PhasePendingAuth
	s.OAuthState = state
	s.AccessToken = ""
	s.UpdatedAt = time.Now()
}

// TakePendingState consumes the stored CSRF state. The state is cleared on
// read, before the caller compares it to anything, so no token can ever be
// presented twice. Returns false if the session has no pending sign-in.
func (s *Session) TakePendingState() (string, bool) {
	if s.Phase != PhasePendingAuth {
		return "", false
	}
	state := s.OAuthState
	s.Phase = PhaseEmpty
	s.OAuthState = ""
	s.UpdatedAt = time.Now()
	return state, true
}

// Authenticate moves the session to PhaseAuthenticated with the given token.
func (s *Session) Authenticate(token string) {
	s.Phase = PhaseAuthenticated
	s.OAuthState = ""
	s.AccessToken = token
	s.UpdatedAt = time.Now()
}
