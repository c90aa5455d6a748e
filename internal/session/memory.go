package session

import (
	"context"
	"sync"
)

// MemoryStore keeps session state in-process. Used in tests and as a
// fallback when redis is not configured.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, sid, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[sessionKey(sid, key)]
	if !ok {
		return "", ErrNoValue
	}
	return val, nil
}

func (s *MemoryStore) Set(_ context.Context, sid, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionKey(sid, key)] = value
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sid, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionKey(sid, key))
	return nil
}
