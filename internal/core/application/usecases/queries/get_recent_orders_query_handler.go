package queries

import (
	"context"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/ports"
)

type GetRecentOrdersQueryHandler struct {
	store ports.DocumentStore
	clock kernel.Clock
}

func NewGetRecentOrdersQueryHandler(store ports.DocumentStore, clock kernel.Clock) GetRecentOrdersQueryHandler {
	return GetRecentOrdersQueryHandler{store: store, clock: clock}
}

// Handle merges AcceptedOrder and RejectedOrders, newest first, and keeps at
// most RecentOrdersLimit of them. Orders without a readable timestamp count
// as just now.
func (h GetRecentOrdersQueryHandler) Handle(ctx context.Context, query GetRecentOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	accepted, err := listOrders(ctx, h.store, query.Phone(), order.AcceptedOrder)
	if err != nil {
		return nil, err
	}
	rejected, err := listOrders(ctx, h.store, query.Phone(), order.RejectedOrders)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	views := append(accepted, rejected...)
	for i := range views {
		if views[i].At.IsZero() {
			views[i].At = now
		}
	}
	newestFirst(views)

	if len(views) > RecentOrdersLimit {
		views = views[:RecentOrdersLimit]
	}
	return views, nil
}
