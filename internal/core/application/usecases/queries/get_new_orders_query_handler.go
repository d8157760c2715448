package queries

import (
	"context"

	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/ports"
)

type GetNewOrdersQueryHandler struct {
	store ports.DocumentStore
}

func NewGetNewOrdersQueryHandler(store ports.DocumentStore) GetNewOrdersQueryHandler {
	return GetNewOrdersQueryHandler{store: store}
}

// Handle returns the partner's new orders, newest first.
func (h GetNewOrdersQueryHandler) Handle(ctx context.Context, query GetNewOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	views, err := listOrders(ctx, h.store, query.Phone(), order.NewOrders)
	if err != nil {
		return nil, err
	}
	newestFirst(views)
	return views, nil
}
