// Package inmem holds process-local implementations of the persistence ports,
// used when no shared backend is configured and in tests.
package inmem

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// SeenSet is a ports.SeenSet kept in memory. Several service instances each
// keep their own, so each alerts once.
type SeenSet struct {
	mu     sync.Mutex
	scopes map[string]map[string]struct{}
}

func NewSeenSet() *SeenSet {
	return &SeenSet{scopes: make(map[string]map[string]struct{})}
}

func (s *SeenSet) Members(ctx context.Context, scope string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.scopes[scope])), nil
}

func (s *SeenSet) Add(ctx context.Context, scope string, ids ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.scopes[scope]
	if !ok {
		set = make(map[string]struct{}, len(ids))
		s.scopes[scope] = set
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return nil
}

func (s *SeenSet) Remove(ctx context.Context, scope string, ids ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.scopes[scope]
	for _, id := range ids {
		delete(set, id)
	}
	if len(set) == 0 {
		delete(s.scopes, scope)
	}
	return nil
}
