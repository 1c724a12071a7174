// Package signin orchestrates the GitHub authorization-code flow: it owns the
// CSRF-state lifecycle and the strict start → callback sequence. Handlers
// translate its errors into HTTP responses; this package never touches the
// response writer.
package signin

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cavemanlearn/bff/internal/config"
	"github.com/cavemanlearn/bff/internal/core/sessions"
	"github.com/cavemanlearn/bff/internal/github"
)

// Provider is the identity-provider surface the flow needs. *github.Client
// satisfies it; tests substitute fakes or httptest-backed clients.
type Provider interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*github.TokenResponse, error)
	FetchUser(ctx context.Context, accessToken string) (*github.User, error)
}

// Service runs the sign-in flow against a session store and a provider.
type Service struct {
	store    sessions.Store
	provider Provider
	cfg      config.GitHub
}

// NewService wires the flow controller.
func NewService(store sessions.Store, provider Provider, cfg config.GitHub) *Service {
	return &Service{store: store, provider: provider, cfg: cfg}
}

// Start begins a sign-in: it generates a fresh single-use state token, stores
// it in the browser session, and returns the provider authorize URL to
// redirect to. The state is persisted before the URL is handed back, so a
// callback can never arrive ahead of its stored state.
func (s *Service) Start(ctx context.Context, sessionID string) (string, error) {
	if s.cfg.ClientID == "" {
		return "", fmt.Errorf("%w: missing client id", ErrNotConfigured)
	}
	if s.cfg.RedirectURI == "" {
		return "", fmt.Errorf("%w: missing redirect URI", ErrNotConfigured)
	}

	// UUIDv4: 122 random bits from crypto/rand, collision-negligible across
	// any realistic number of outstanding sessions.
	state := uuid.NewString()

	sess, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, sessions.ErrNotFound) {
		sess = sessions.New(sessionID)
	} else if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSessionRead, err)
	}

	sess.BeginAuth(state)
	if err := s.store.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSessionWrite, err)
	}

	return s.provider.AuthorizeURL(state), nil
}

// Callback completes a sign-in. The stored state is consumed on read —
// persisted as gone before it is compared — so a token is single-use whatever
// the outcome. A mismatch short-circuits before any call to the provider.
func (s *Service) Callback(ctx context.Context, sessionID, code, state string) (*github.User, error) {
	if s.cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: missing client id", ErrNotConfigured)
	}
	if s.cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: missing client secret", ErrNotConfigured)
	}
	if s.cfg.RedirectURI == "" {
		return nil, fmt.Errorf("%w: missing redirect URI", ErrNotConfigured)
	}

	sess, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, sessions.ErrNotFound) {
		return nil, ErrStateAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionRead, err)
	}

	pending, ok := sess.TakePendingState()
	if !ok {
		return nil, ErrStateAbsent
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionWrite, err)
	}

	if pending != state {
		return nil, ErrStateMismatch
	}

	token, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	sess.Authenticate(token.AccessToken)
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionWrite, err)
	}

	user, err := s.provider.FetchUser(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	return user, nil
}
