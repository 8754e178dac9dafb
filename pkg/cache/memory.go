package cache

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemoryStoreSize = 1024

// MemoryStore is an in-process Store bounded by an LRU. It approximates
// session scoping: entries live as long as the owning process.
type MemoryStore struct {
	entries *lru.Cache[string, string]
}

// NewMemoryStore creates a store holding at most size entries. A size of
// zero or less falls back to the default capacity.
func NewMemoryStore(size int) (*MemoryStore, error) {
	if size <= 0 {
		size = defaultMemoryStoreSize
	}

	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}

	return &MemoryStore{entries: entries}, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := s.entries.Get(key)
	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.entries.Add(key, value)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		s.entries.Remove(key)
	}

	return nil
}

func (s *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	matched := make([]string, 0)

	for _, key := range s.entries.Keys() {
		if strings.HasPrefix(key, prefix) {
			matched = append(matched, key)
		}
	}

	return matched, nil
}
