// Package history keeps the recently used entry texts that feed input
// autocompletion.
package history

import (
	"slices"
	"strings"
	"sync"
)

// Set is an insertion-ordered set of strings holding a bounded number of items.
// Adding an existing item moves it to the most recent position; adding beyond
// the cap evicts the oldest item. Safe for concurrent use.
type Set struct {
	mu    sync.RWMutex
	limit int
	items []string // oldest first
}

// New creates a Set holding at most limit items. A limit <= 0 means no limit.
func New(limit int) *Set {
	return &Set{limit: limit}
}

// Add records s as the most recently used item. Blank strings are ignored.
func (s *Set) Add(item string) {
	item = strings.TrimSpace(item)
	if item == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.Index(s.items, item); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
	s.items = append(s.items, item)
	if s.limit > 0 && len(s.items) > s.limit {
		s.items = slices.Delete(s.items, 0, len(s.items)-s.limit)
	}
}

// AddAll adds items in order, so the last one ends up most recent.
func (s *Set) AddAll(items []string) {
	for _, item := range items {
		s.Add(item)
	}
}

// Replace discards all items and adds items in order.
func (s *Set) Replace(items []string) {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
	s.AddAll(items)
}

// Len returns the number of items.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Contains reports whether item is in the set.
func (s *Set) Contains(item string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.items, item)
}

// Recent returns all items, most recent first.
func (s *Set) Recent() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recent := slices.Clone(s.items)
	slices.Reverse(recent)
	return recent
}

// Suggest returns the items starting with prefix, most recent first.
// Matching is case-insensitive; an empty prefix matches nothing.
func (s *Set) Suggest(prefix string) []string {
	if prefix == "" {
		return nil
	}
	prefix = strings.ToLower(prefix)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []string
	for i := len(s.items) - 1; i >= 0; i-- {
		if strings.HasPrefix(strings.ToLower(s.items[i]), prefix) {
			matches = append(matches, s.items[i])
		}
	}
	return matches
}
