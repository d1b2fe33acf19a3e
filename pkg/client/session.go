package client

import "sync"

// Session holds the bearer token between calls. Implementations are injected
// so callers decide where tokens live (memory, keychain, test fixture).
type Session interface {
	Token() string
	SetToken(token string)
	Clear()
}

// MemorySession is a concurrency-safe in-memory Session.
type MemorySession struct {
	mu    sync.RWMutex
	token string
}

func NewMemorySession() *MemorySession {
	return &MemorySession{}
}

func (s *MemorySession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemorySession) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemorySession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
