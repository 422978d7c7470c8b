package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memory is the in-process backend: a bounded LRU whose entries expire after
// a fixed TTL. Eviction beyond TTL expiry is least-recently-used, which
// respects the configured capacity.
type Memory struct {
	lru *expirable.LRU[string, *Entry]
}

// NewMemory builds a memory cache holding at most maxKeys entries, each
// expiring ttl after the write.
func NewMemory(ttl time.Duration, maxKeys int) *Memory {
	return &Memory{lru: expirable.NewLRU[string, *Entry](maxKeys, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, email string) (*Entry, bool, error) {
	entry, ok := m.lru.Get(key(email))
	return entry, ok, nil
}

func (m *Memory) Set(_ context.Context, email string, entry *Entry) error {
	m.lru.Add(key(email), entry)
	return nil
}

func (m *Memory) Delete(_ context.Context, email string) error {
	m.lru.Remove(key(email))
	return nil
}
