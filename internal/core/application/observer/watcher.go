package observer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"localstore/internal/core/application/usecases/queries"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/errs"
)

// NewOrdersReader is the query Watcher polls for new orders.
type NewOrdersReader interface {
	Handle(ctx context.Context, query queries.GetNewOrdersQuery) ([]queries.OrderView, error)
}

// RecentOrdersReader is the query Watcher polls for recent orders.
type RecentOrdersReader interface {
	Handle(ctx context.Context, query queries.GetRecentOrdersQuery) ([]queries.OrderView, error)
}

// Snapshot is the recent-orders list as of the last poll.
type Snapshot struct {
	Orders   []queries.OrderView
	PolledAt time.Time
}

// Watcher polls on behalf of focused partners only. Blur suspends polling for
// a partner without touching its seen set, so a later Focus resumes where the
// partner left off.
type Watcher struct {
	mu      sync.RWMutex
	focused map[string]struct{}
	recent  map[string]Snapshot

	tracker      *Tracker
	newOrders    NewOrdersReader
	recentOrders RecentOrdersReader
	clock        kernel.Clock
	logger       *slog.Logger
}

func NewWatcher(
	tracker *Tracker,
	newOrders NewOrdersReader,
	recentOrders RecentOrdersReader,
	clock kernel.Clock,
	logger *slog.Logger,
) (*Watcher, error) {
	if tracker == nil {
		return nil, errs.NewValueIsRequiredError("tracker")
	}
	if newOrders == nil {
		return nil, errs.NewValueIsRequiredError("newOrders")
	}
	if recentOrders == nil {
		return nil, errs.NewValueIsRequiredError("recentOrders")
	}
	if clock == nil {
		return nil, errs.NewValueIsRequiredError("clock")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	return &Watcher{
		focused:      make(map[string]struct{}),
		recent:       make(map[string]Snapshot),
		tracker:      tracker,
		newOrders:    newOrders,
		recentOrders: recentOrders,
		clock:        clock,
		logger:       logger.With("component", "observer_watcher"),
	}, nil
}

func (w *Watcher) Focus(phone kernel.Key) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.focused[phone.String()] = struct{}{}
}

// Blur stops polling for phone and drops its cached snapshot.
func (w *Watcher) Blur(phone kernel.Key) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.focused, phone.String())
	delete(w.recent, phone.String())
}

func (w *Watcher) IsFocused(phone kernel.Key) bool {
	return w.isFocused(phone.String())
}

// Focused returns the focused phones, sorted.
func (w *Watcher) Focused() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Sorted(maps.Keys(w.focused))
}

// Recent returns the last recent-orders snapshot of phone.
func (w *Watcher) Recent(phone kernel.Key) (Snapshot, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.recent[phone.String()]
	return s, ok
}

// PollNewOrders observes the new orders of every focused partner and returns
// the ids seen for the first time, per phone. A failing partner does not stop
// the others; their errors are joined.
func (w *Watcher) PollNewOrders(ctx context.Context) (map[string][]string, error) {
	fresh := make(map[string][]string)
	var errList []error

	for _, phone := range w.Focused() {
		q, err := queries.NewGetNewOrdersQuery(phone)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		views, err := w.newOrders.Handle(ctx, q)
		if err != nil {
			errList = append(errList, fmt.Errorf("poll new orders of %s: %w", phone, err))
			continue
		}

		ids := make([]string, 0, len(views))
		for _, v := range views {
			ids = append(ids, v.ID)
		}
		// The partner may have blurred while the query was in flight.
		if !w.isFocused(phone) {
			continue
		}
		seen, err := w.tracker.Observe(ctx, phone, ids)
		if err != nil {
			errList = append(errList, fmt.Errorf("observe new orders of %s: %w", phone, err))
			continue
		}
		if len(seen) > 0 {
			fresh[phone] = seen
		}
	}

	return fresh, errors.Join(errList...)
}

// PollRecentOrders refreshes the cached recent-orders snapshot of every
// focused partner.
func (w *Watcher) PollRecentOrders(ctx context.Context) error {
	var errList []error

	for _, phone := range w.Focused() {
		q, err := queries.NewGetRecentOrdersQuery(phone)
		if err != nil {
			errList = append(errList, err)
			continue
		}
		views, err := w.recentOrders.Handle(ctx, q)
		if err != nil {
			errList = append(errList, fmt.Errorf("poll recent orders of %s: %w", phone, err))
			continue
		}

		w.mu.Lock()
		if _, ok := w.focused[phone]; ok {
			w.recent[phone] = Snapshot{Orders: views, PolledAt: w.clock.Now()}
		}
		w.mu.Unlock()
	}

	return errors.Join(errList...)
}

func (w *Watcher) isFocused(phone string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.focused[phone]
	return ok
}
