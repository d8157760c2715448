package queries

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/guard"
)

var ErrGetStoreOrdersQueryIsNotConstructed = errors.New(
	"GetStoreOrdersQuery must be created via NewGetStoreOrdersQuery constructor",
)

// GetStoreOrdersQuery is the store's order screen: what is still to be handed
// over plus what was handed over since yesterday.
type GetStoreOrdersQuery struct {
	storeID kernel.Key

	guard guard.ConstructorGuard
}

func NewGetStoreOrdersQuery(storeID string) (GetStoreOrdersQuery, error) {
	s, err := kernel.NewKey("storeId", storeID)
	if err != nil {
		return GetStoreOrdersQuery{}, err
	}
	return GetStoreOrdersQuery{storeID: s, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStoreOrdersQuery) StoreID() kernel.Key {
	return q.storeID
}

func (q GetStoreOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStoreOrdersQueryIsNotConstructed)
}
