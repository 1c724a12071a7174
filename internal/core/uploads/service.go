// Package uploads archives inbound request bodies into object storage under a
// timestamped key. It has no interaction with the sign-in flow.
package uploads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"
)

// BlobStore writes a single object. Implementations must be safe for
// concurrent use.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}

// Service stores request bodies as text objects.
type Service struct {
	store BlobStore
	now   func() time.Time
}

// NewService creates an archiver over the given blob store.
func NewService(store BlobStore) *Service {
	return &Service{store: store, now: time.Now}
}

// Archive writes body to the store under "<unix-seconds>.txt" and returns the
// key. Two archives within the same second share a key; last writer wins,
// which is acceptable for an append-only scratch archive.
func (s *Service) Archive(ctx context.Context, body []byte) (string, error) {
	key := fmt.Sprintf("%d.txt", s.now().Unix())
	if err := s.store.Put(ctx, key, bytes.NewReader(body), int64(len(body)), "text/plain"); err != nil {
		return "", fmt.Errorf("store object %q: %w", key, err)
	}
	return key, nil
}
