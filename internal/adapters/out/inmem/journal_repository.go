package inmem

import (
	"context"
	"sort"
	"sync"

	"localstore/internal/core/domain/model/journal"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/errs"
)

// JournalRepository keeps transition runs in memory. Entries are stored by
// pointer, so callers must not mutate an entry after handing it over unless
// they Update it right away.
type JournalRepository struct {
	mu      sync.RWMutex
	entries map[string]*journal.Entry
}

func NewJournalRepository() *JournalRepository {
	return &JournalRepository{entries: make(map[string]*journal.Entry)}
}

func (r *JournalRepository) Add(ctx context.Context, entry *journal.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.ID().String()] = entry
	return nil
}

func (r *JournalRepository) Update(ctx context.Context, entry *journal.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.ID().String()]; !ok {
		return errs.NewObjectNotFoundError("transitionRun", entry.ID().String())
	}
	r.entries[entry.ID().String()] = entry
	return nil
}

func (r *JournalRepository) Get(ctx context.Context, id kernel.UUID) (*journal.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("transitionRun", id.String())
	}
	return e, nil
}

func (r *JournalRepository) ListByOrder(ctx context.Context, orderID string) ([]*journal.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	runs := make([]*journal.Entry, 0)
	for _, e := range r.entries {
		if e.OrderID() == orderID {
			runs = append(runs, e)
		}
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt().After(runs[j].StartedAt())
	})
	return runs, nil
}
