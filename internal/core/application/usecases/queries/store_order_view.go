package queries

import (
	"context"
	"errors"
	"sort"
	"time"

	"localstore/internal/core/domain/model/store"
	"localstore/internal/core/ports"
	"localstore/internal/pkg/errs"
)

// StoreOrderView is a record from the store's side. Archived is set for
// records read from PreviousOrders.
type StoreOrderView struct {
	ID       string
	Status   string
	At       time.Time
	Archived bool
	Order    store.Order
}

func listStoreOrders(ctx context.Context, docs ports.DocumentStore, path string, archived bool) ([]StoreOrderView, error) {
	records := map[string]*store.Order{}
	err := docs.Get(ctx, path, &records)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return []StoreOrderView{}, nil
	}
	if err != nil {
		return nil, err
	}

	views := make([]StoreOrderView, 0, len(records))
	for id, r := range records {
		if r == nil {
			continue
		}
		if r.OrderID == "" {
			r.OrderID = id
		}
		views = append(views, StoreOrderView{ID: id, Status: r.Status, At: r.Time(), Archived: archived, Order: *r})
	}
	return views, nil
}

func storeNewestFirst(views []StoreOrderView) {
	sort.SliceStable(views, func(i, j int) bool {
		if !views[i].At.Equal(views[j].At) {
			return views[i].At.After(views[j].At)
		}
		return views[i].ID < views[j].ID
	})
}
