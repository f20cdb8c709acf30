package historystore

import (
	"context"
	"sync"

	"github.com/yanqian/article-summarizer/internal/domain/history"
)

// MemoryStore is a fixed capacity ring buffer of history entries. Entries
// live only as long as the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []history.Entry
	next    int
	size    int
}

// NewMemoryStore constructs a store holding at most capacity entries.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = history.DefaultCapacity
	}
	return &MemoryStore{entries: make([]history.Entry, capacity)}
}

// Add implements history.Store. The oldest entry is overwritten when full.
func (s *MemoryStore) Add(_ context.Context, entry history.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[s.next] = entry
	s.next = (s.next + 1) % len(s.entries)
	if s.size < len(s.entries) {
		s.size++
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns everything held.
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > s.size {
		limit = s.size
	}
	out := make([]history.Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (s.next - i + len(s.entries)) % len(s.entries)
		out = append(out, s.entries[idx])
	}
	return out, nil
}

// Capacity reports the maximum number of entries retained.
func (s *MemoryStore) Capacity() int {
	return len(s.entries)
}

var _ history.Store = (*MemoryStore)(nil)
