package sessions

import "context"

// Store persists sessions keyed by their opaque id. Implementations must be
// safe for concurrent use; expiry is a store policy, not the caller's.
type Store interface {
	// Get returns the session for id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)
	// Save writes the session, creating or replacing it.
	Save(ctx context.Context, s *Session) error
	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}
