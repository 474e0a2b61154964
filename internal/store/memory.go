package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-activity-assistant/internal/weather"
)

var (
	// ErrNotFound is returned when no fresh snapshot is cached for a key.
	ErrNotFound = errors.New("no cached weather snapshot")
)

type entry struct {
	snapshot weather.Snapshot
	savedAt  time.Time
}

// SnapshotHistory holds a time-ordered list of cached snapshots for one key.
type SnapshotHistory struct {
	entries []entry
}

// MemoryStore is a concurrency-safe in-memory implementation of weather.Store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: cache key, value: history
	data map[string]*SnapshotHistory

	// retention configuration
	maxHistory int           // max number of snapshots per key
	maxAge     time.Duration // snapshots older than this are never served

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited; maxAge <= 0 disables expiry.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*SnapshotHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// SaveSnapshot appends a new snapshot for a key and enforces retention.
func (s *MemoryStore) SaveSnapshot(_ context.Context, key string, snapshot weather.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &SnapshotHistory{}
		s.data[key] = history
	}

	now := s.now()
	history.entries = append(history.entries, entry{snapshot: snapshot, savedAt: now})

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.entries) > s.maxHistory {
		over := len(history.entries) - s.maxHistory
		history.entries = history.entries[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := now.Add(-s.maxAge)
		i := 0
		for ; i < len(history.entries); i++ {
			if !history.entries[i].savedAt.Before(cutoff) {
				break
			}
		}
		history.entries = history.entries[i:]
	}
	return nil
}

// GetLatest returns the most recent snapshot for a key if it is still fresh.
func (s *MemoryStore) GetLatest(_ context.Context, key string) (weather.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.entries) == 0 {
		return weather.Snapshot{}, ErrNotFound
	}

	latest := history.entries[len(history.entries)-1]
	if s.maxAge > 0 && s.now().Sub(latest.savedAt) > s.maxAge {
		return weather.Snapshot{}, ErrNotFound
	}
	return latest.snapshot, nil
}

// Len reports how many snapshots are retained for key.
func (s *MemoryStore) Len(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if history, ok := s.data[key]; ok {
		return len(history.entries)
	}
	return 0
}
