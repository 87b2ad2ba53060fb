package store

import (
	"context"
	"errors"

	"github.com/foodcourt/shopfront/internal/session"
)

// ErrNotFound is returned when a session id has no live entry, either
// because it never existed or because it expired.
var ErrNotFound = errors.New("session not found")

// Store persists shopping sessions between requests. Implementations must
// treat expired entries as absent.
type Store interface {
	Get(ctx context.Context, id string) (*session.Session, error)
	Save(ctx context.Context, sess *session.Session) error
	Delete(ctx context.Context, id string) error
	Close() error
}

func sessionKey(id string) string {
	return "session:" + id
}
