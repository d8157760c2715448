// Package observer polls the document store for the partners currently
// looking at the app and raises an alert for every order they have not seen.
//
// Tracker owns the seen-set bookkeeping and can be driven directly in tests.
// Watcher decides whom to poll and keeps the latest recent-orders snapshot.
package observer

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"localstore/internal/core/ports"
	"localstore/internal/pkg/errs"
)

// Tracker diffs the new orders a partner has against the ids already alerted.
// For every scope the seen set stays a subset of the ids last observed.
type Tracker struct {
	seen   ports.SeenSet
	alarm  ports.Alarm
	logger *slog.Logger
}

func NewTracker(seen ports.SeenSet, alarm ports.Alarm, logger *slog.Logger) (*Tracker, error) {
	if seen == nil {
		return nil, errs.NewValueIsRequiredError("seen")
	}
	if alarm == nil {
		return nil, errs.NewValueIsRequiredError("alarm")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	return &Tracker{seen: seen, alarm: alarm, logger: logger.With("component", "observer_tracker")}, nil
}

// Observe records present as the new orders scope has right now. It returns
// the ids never seen before, sorted, and starts the alarm for each of them.
// Ids seen earlier but no longer present are dropped and their alarm stopped.
func (t *Tracker) Observe(ctx context.Context, scope string, present []string) ([]string, error) {
	if scope == "" {
		return nil, errs.NewValueIsRequiredError("scope")
	}

	members, err := t.seen.Members(ctx, scope)
	if err != nil {
		return nil, err
	}

	var fresh, gone []string
	for _, id := range present {
		if !slices.Contains(members, id) && !slices.Contains(fresh, id) {
			fresh = append(fresh, id)
		}
	}
	for _, id := range members {
		if !slices.Contains(present, id) {
			gone = append(gone, id)
		}
	}

	if len(gone) > 0 {
		if err = t.seen.Remove(ctx, scope, gone...); err != nil {
			return nil, err
		}
		for _, id := range gone {
			t.alarm.Stop(scope, id)
		}
	}

	if len(fresh) == 0 {
		return []string{}, nil
	}
	if err = t.seen.Add(ctx, scope, fresh...); err != nil {
		return nil, err
	}
	slices.Sort(fresh)
	for _, id := range fresh {
		t.alarm.Start(scope, id)
	}

	t.logger.InfoContext(ctx, "New orders observed", "scope", scope, "orders", fresh)
	return fresh, nil
}

// Forget drops orderID from the seen set of phone and silences it. It is
// called once the partner accepted or rejected the order, so failures are
// logged rather than returned; the next Observe cleans up what is left.
func (t *Tracker) Forget(ctx context.Context, phone, orderID string) {
	t.alarm.Stop(phone, orderID)
	if err := t.seen.Remove(ctx, phone, orderID); err != nil && !errors.Is(err, context.Canceled) {
		t.logger.ErrorContext(ctx, "Failed to forget order", "scope", phone, "orderId", orderID, "error", err)
	}
}

// Alerts lists the orders of scope whose alarm is ringing.
func (t *Tracker) Alerts(scope string) []string {
	return t.alarm.Ringing(scope)
}
