package services

import (
	"slices"
	"sort"

	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/domain/model/store"
)

// Split is the outcome of dividing one order between stores.
type Split struct {
	// Assignments maps store id to that store's share. Stores that sell
	// nothing in the order are absent.
	Assignments map[string]order.Assignment

	// Unmatched lists item names no store sells, sorted.
	Unmatched []string
}

// StoreIDs returns the ids of the stores that received a share, sorted.
func (s Split) StoreIDs() []string {
	ids := make([]string, 0, len(s.Assignments))
	for id := range s.Assignments {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// OrderSplitter assigns each line item to every store whose profile lists the
// item's category. An item in a category several stores share goes to each of
// them, since any of them may fulfil it.
type OrderSplitter struct{}

func NewOrderSplitter() OrderSplitter {
	return OrderSplitter{}
}

// Split divides items between stores keyed by store id. Entries without a
// profile are skipped.
func (OrderSplitter) Split(items map[string]order.Item, stores map[string]store.Entry) Split {
	result := Split{Assignments: make(map[string]order.Assignment)}

	storeIDs := make([]string, 0, len(stores))
	for id, entry := range stores {
		if entry.Profile != nil {
			storeIDs = append(storeIDs, id)
		}
	}
	sort.Strings(storeIDs)

	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		item := items[name]
		matched := false
		for _, id := range storeIDs {
			profile := stores[id].Profile
			if !profile.Sells(item.Category) {
				continue
			}
			matched = true

			a, ok := result.Assignments[id]
			if !ok {
				a = order.Assignment{
					Categories: slices.Clone(profile.Categories),
					UserID:     id,
					Products:   order.Products{},
				}
			}
			a.Products.Add(item.Category, name, item.Product)
			result.Assignments[id] = a
		}
		if !matched {
			result.Unmatched = append(result.Unmatched, name)
		}
	}

	return result
}
