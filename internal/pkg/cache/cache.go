// Package cache provides a small in-process tagged cache with fixed TTLs.
// It is a correctness mechanism for read-after-write freshness, not a
// performance subsystem: entries leave the cache through expiry or tag
// invalidation only, there is no sizing or eviction policy.
package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	tags      []string
	expiresAt time.Time
}

// Store is a keyed cache where every entry carries a set of tags. A write
// path invalidates tags after a successful mutation; the next read for any
// key sharing a tag refetches.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached value for key, or false when absent or expired.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the given TTL and tags.
func (s *Store) Set(key string, value interface{}, ttl time.Duration, tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{
		value:     value,
		tags:      tags,
		expiresAt: s.now().Add(ttl),
	}
}

// Invalidate drops every entry carrying any of the given tags. It returns
// only after the entries are gone, so a caller that invalidates before
// reporting success guarantees the next read sees fresh data.
func (s *Store) Invalidate(tags ...string) {
	if len(tags) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if hasAny(e.tags, tags) {
			delete(s.entries, key)
		}
	}
}

// Len reports the number of live entries, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func hasAny(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

// Fetch wraps a read in the cache: return the cached value under key when
// live, otherwise call fill, store its result and return it. Errors from
// fill are never cached.
func Fetch[T any](ctx context.Context, s *Store, key string, ttl time.Duration, tags []string, fill func(context.Context) (T, error)) (T, error) {
	if v, ok := s.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	value, err := fill(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	s.Set(key, value, ttl, tags...)
	return value, nil
}
