package mirror

import (
	"context"
	"sort"
	"sync"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process Store used in tests and as a fallback when
// Redis is unreachable. Entries never expire; the mirror is rebuilt from
// the note store on every sync anyway.
type MemoryStore struct {
	notes *cache.Cache

	mu       sync.RWMutex
	selected string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		notes: cache.New(cache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Upsert(_ context.Context, id, content string) error {
	s.notes.Set(id, content, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, id string) error {
	s.notes.Delete(id)
	return nil
}

func (s *MemoryStore) SetAll(_ context.Context, entries []Entry) error {
	s.notes.Flush()
	for _, e := range entries {
		s.notes.Set(e.Id, e.Content, cache.NoExpiration)
	}
	return nil
}

func (s *MemoryStore) Select(_ context.Context, id string) error {
	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Selected(_ context.Context) (string, bool, error) {
	s.mu.RLock()
	id := s.selected
	s.mu.RUnlock()
	if id == "" {
		return "", false, nil
	}
	if _, found := s.notes.Get(id); !found {
		return "", false, nil
	}
	return id, true, nil
}

func (s *MemoryStore) ContentFor(_ context.Context, id string) (string, bool, error) {
	v, found := s.notes.Get(id)
	if !found {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Entry, error) {
	items := s.notes.Items()
	entries := make([]Entry, 0, len(items))
	for id, item := range items {
		entries = append(entries, Entry{Id: id, Content: item.Object.(string)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Id < entries[j].Id })
	return entries, nil
}
