package summarycache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/yanqian/article-summarizer/internal/domain/summarizer"
)

const defaultMaxEntries = 1024

type memoryEntry struct {
	key       string
	summary   string
	expiresAt time.Time
}

// MemoryStore is an LRU of chunk summaries with optional expiry.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	maxEntries int
	now        func() time.Time
}

// NewMemoryStore constructs a store holding at most maxEntries summaries.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &MemoryStore{
		entries:    make(map[string]*list.Element, maxEntries),
		order:      list.New(),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get implements summarizer.Cache.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	entry := elem.Value.(*memoryEntry)
	if hasExpired(entry.expiresAt, s.now()) {
		s.removeElement(elem)
		return "", false, nil
	}
	s.order.MoveToFront(elem)
	return entry.summary, true, nil
}

// Set implements summarizer.Cache. A non-positive ttl never expires.
func (s *MemoryStore) Set(_ context.Context, key, summary string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	if elem, ok := s.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.summary = summary
		entry.expiresAt = exp
		s.order.MoveToFront(elem)
		return nil
	}

	s.entries[key] = s.order.PushFront(&memoryEntry{key: key, summary: summary, expiresAt: exp})
	for len(s.entries) > s.maxEntries {
		s.removeElement(s.order.Back())
	}
	return nil
}

// Len reports the number of cached summaries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) removeElement(elem *list.Element) {
	entry := elem.Value.(*memoryEntry)
	delete(s.entries, entry.key)
	s.order.Remove(elem)
}

func hasExpired(ts, now time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return !ts.After(now)
}

var _ summarizer.Cache = (*MemoryStore)(nil)
