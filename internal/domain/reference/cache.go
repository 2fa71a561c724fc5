package reference

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	items   []Item
	expires time.Time
}

// CachedSource keeps successful fetches for ttl. Failures are never cached.
type CachedSource struct {
	next Source
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[Entity]cacheEntry
}

// NewCachedSource wraps next. A ttl of zero or less disables caching.
func NewCachedSource(next Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[Entity]cacheEntry),
	}
}

func (s *CachedSource) Fetch(ctx context.Context, entity Entity) ([]Item, error) {
	if s.ttl <= 0 {
		return s.next.Fetch(ctx, entity)
	}

	s.mu.Lock()
	entry, ok := s.entries[entity]
	s.mu.Unlock()
	if ok && s.now().Before(entry.expires) {
		cacheHits.WithLabelValues(string(entity)).Inc()
		return cloneItems(entry.items), nil
	}

	items, err := s.next.Fetch(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries[entity] = cacheEntry{items: cloneItems(items), expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return items, nil
}

// Invalidate drops every cached list.
func (s *CachedSource) Invalidate() {
	s.mu.Lock()
	s.entries = make(map[Entity]cacheEntry)
	s.mu.Unlock()
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
