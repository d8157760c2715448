package queries

import (
	"context"
	"errors"
	"sort"
	"time"

	"localstore/internal/core/domain/docpath"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/ports"
	"localstore/internal/pkg/errs"
)

// OrderView is an order together with the lifecycle status derived from the
// collection it was read from.
type OrderView struct {
	ID     string
	Status order.Status
	At     time.Time
	Order  *order.Order
}

// listOrders reads one of the partner's collections. A missing collection is
// an empty list.
func listOrders(ctx context.Context, store ports.DocumentStore, phone kernel.Key, c order.Collection) ([]OrderView, error) {
	docs := map[string]*order.Order{}
	err := store.Get(ctx, docpath.PartnerOrders(phone, c), &docs)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return []OrderView{}, nil
	}
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(docs))
	for id, o := range docs {
		if o == nil {
			continue
		}
		if o.ID == "" {
			o.ID = id
		}
		views = append(views, OrderView{ID: id, Status: o.StatusIn(c), At: o.Time(), Order: o})
	}
	return views, nil
}

// newestFirst orders views by time, newest first, then by id.
func newestFirst(views []OrderView) {
	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].At.Equal(views[j].At) {
			return views[i].At.After(views[j].At)
		}
		return views[i].ID < views[j].ID
	})
}
