// Package alarm keeps the ringing state of new-order alerts. The app plays a
// looping sound while an order of the partner is ringing; the server only
// tracks which orders those are.
package alarm

import (
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"
)

// Registry is an in-process ports.Alarm.
type Registry struct {
	mu      sync.Mutex
	ringing map[string]map[string]time.Time
	now     func() time.Time
	logger  *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		ringing: make(map[string]map[string]time.Time),
		now:     time.Now,
		logger:  logger.With("component", "alarm"),
	}
}

// Start rings for id. Starting an alarm that already rings keeps its start time.
func (r *Registry) Start(scope, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, ok := r.ringing[scope]
	if !ok {
		ids = make(map[string]time.Time)
		r.ringing[scope] = ids
	}
	if _, ok = ids[id]; ok {
		return
	}
	ids[id] = r.now()
	r.logger.Info("Alarm started", "scope", scope, "orderId", id)
}

func (r *Registry) Stop(scope, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, ok := r.ringing[scope]
	if !ok {
		return
	}
	if _, ok = ids[id]; !ok {
		return
	}
	delete(ids, id)
	if len(ids) == 0 {
		delete(r.ringing, scope)
	}
	r.logger.Info("Alarm stopped", "scope", scope, "orderId", id)
}

// Ringing returns the ids ringing for scope, sorted.
func (r *Registry) Ringing(scope string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.ringing[scope]))
}

// Since returns when id started ringing.
func (r *Registry) Since(scope, id string) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.ringing[scope][id]
	return t, ok
}
