package queries

import (
	"context"
	"errors"

	"localstore/internal/core/domain/docpath"
	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/ports"
	"localstore/internal/pkg/errs"
)

type GetPartnerOrderQueryHandler struct {
	store ports.DocumentStore
}

func NewGetPartnerOrderQueryHandler(store ports.DocumentStore) GetPartnerOrderQueryHandler {
	return GetPartnerOrderQueryHandler{store: store}
}

// Handle looks through the partner's collections in lifecycle order. An order
// caught mid-transition in two collections is reported at the later one.
func (h GetPartnerOrderQueryHandler) Handle(ctx context.Context, query GetPartnerOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var found *OrderView
	for _, c := range order.PartnerCollections() {
		var o order.Order
		err := h.store.Get(ctx, docpath.PartnerOrder(query.Phone(), c, query.OrderID()), &o)
		if errors.Is(err, errs.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return OrderView{}, err
		}
		if o.ID == "" {
			o.ID = query.OrderID().String()
		}
		found = &OrderView{ID: o.ID, Status: o.StatusIn(c), At: o.Time(), Order: &o}
	}

	if found == nil {
		return OrderView{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	return *found, nil
}
