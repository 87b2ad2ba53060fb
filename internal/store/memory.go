package store

import (
	"context"
	"sync"
	"time"

	"github.com/foodcourt/shopfront/internal/session"
)

type memoryEntry struct {
	sess      *session.Session
	expiresAt time.Time
}

// memoryStore is the default single-process session store. A janitor
// goroutine evicts expired entries; Get also checks expiry so a stale
// entry is never served between janitor runs. Sessions are deep-copied
// on the way in and out, so concurrent requests never share a live
// pointer and a mutation only becomes visible through Save, matching
// the redis store's JSON round trip.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	nowFunc func() time.Time // injectable clock for testing
	done    chan struct{}
}

func NewMemoryStore(ttl time.Duration) Store {
	s := &memoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		nowFunc: time.Now,
		done:    make(chan struct{}),
	}

	go s.janitor()

	return s
}

func (s *memoryStore) Get(ctx context.Context, id string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	if !ok || s.nowFunc().After(entry.expiresAt) {
		return nil, ErrNotFound
	}

	return entry.sess.Clone(), nil
}

func (s *memoryStore) Save(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sess.ID] = &memoryEntry{
		sess:      sess.Clone(),
		expiresAt: s.nowFunc().Add(s.ttl),
	}

	return nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)

	return nil
}

func (s *memoryStore) Close() error {
	close(s.done)

	return nil
}

func (s *memoryStore) janitor() {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.done:
			return
		}
	}
}

func (s *memoryStore) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
