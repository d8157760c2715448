package queries

import (
	"context"
	"time"

	"localstore/internal/core/domain/docpath"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/store"
	"localstore/internal/core/ports"
)

type GetStoreOrdersQueryHandler struct {
	store ports.DocumentStore
	clock kernel.Clock
}

func NewGetStoreOrdersQueryHandler(store ports.DocumentStore, clock kernel.Clock) GetStoreOrdersQueryHandler {
	return GetStoreOrdersQueryHandler{store: store, clock: clock}
}

// Handle returns the pending "New Order" records and the archived records
// stamped since the start of yesterday, newest first. Archived records
// without a readable timestamp are left out.
func (h GetStoreOrdersQueryHandler) Handle(ctx context.Context, query GetStoreOrdersQuery) ([]StoreOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending, err := listStoreOrders(ctx, h.store, docpath.StoreNewOrders(query.StoreID()), false)
	if err != nil {
		return nil, err
	}

	views := make([]StoreOrderView, 0, len(pending))
	for _, v := range pending {
		if v.Status == store.StatusNewOrder {
			views = append(views, v)
		}
	}

	now := h.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since := today.AddDate(0, 0, -1)

	for _, day := range []time.Time{today, since} {
		archived, err := listStoreOrders(ctx, h.store, docpath.StoreArchiveDay(query.StoreID(), store.ArchiveDayOf(day)), true)
		if err != nil {
			return nil, err
		}
		for _, v := range archived {
			if v.At.IsZero() || v.At.Before(since) {
				continue
			}
			views = append(views, v)
		}
	}

	storeNewestFirst(views)
	return views, nil
}
