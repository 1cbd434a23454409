package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store using an in-process map with TTL eviction.
// This is useful for development and single-instance deployments without
// external dependencies.
type MemoryStore struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]memoryEntry
	stop    chan struct{}
	done    sync.Once
}

type memoryEntry struct {
	language  string
	expiresAt time.Time
}

// newMemoryStore creates a new in-memory store instance
func newMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		stop:    make(chan struct{}),
	}

	// Background sweep keeps the map from accumulating dead sessions; reads
	// also check expiry so the sweep interval is not a correctness concern.
	go s.sweepLoop()

	return s
}

func (s *MemoryStore) sweepLoop() {
	interval := s.ttl
	if interval > time.Minute || interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// GetLanguage returns the stored language for a session
func (s *MemoryStore) GetLanguage(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return "", ErrNotFound
	}
	return entry.language, nil
}

// SetLanguage stores the language for a session and refreshes its TTL
func (s *MemoryStore) SetLanguage(_ context.Context, sessionID, language string) error {
	s.mu.Lock()
	s.entries[sessionID] = memoryEntry{
		language:  language,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return nil
}

// DeleteSession removes a session
func (s *MemoryStore) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}

// Close stops the background sweep
func (s *MemoryStore) Close() error {
	s.done.Do(func() { close(s.stop) })
	return nil
}

// Len returns the number of live entries (for testing)
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
