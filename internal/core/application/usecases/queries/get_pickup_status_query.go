package queries

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/domain/model/store"
	"localstore/internal/pkg/guard"
)

var ErrGetPickupStatusQueryIsNotConstructed = errors.New(
	"GetPickupStatusQuery must be created via NewGetPickupStatusQuery constructor",
)

// GetPickupStatusQuery shows one store's share of an accepted order, as seen
// on the pickup screen.
type GetPickupStatusQuery struct {
	phone   kernel.Key
	orderID kernel.Key
	storeID kernel.Key

	guard guard.ConstructorGuard
}

func NewGetPickupStatusQuery(phone, orderID, storeID string) (GetPickupStatusQuery, error) {
	p, phoneErr := kernel.NewKey("phone", phone)
	o, orderErr := kernel.NewKey("orderId", orderID)
	s, storeErr := kernel.NewKey("storeId", storeID)
	if err := errors.Join(phoneErr, orderErr, storeErr); err != nil {
		return GetPickupStatusQuery{}, err
	}
	return GetPickupStatusQuery{phone: p, orderID: o, storeID: s, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPickupStatusQuery) Phone() kernel.Key {
	return q.phone
}

func (q GetPickupStatusQuery) OrderID() kernel.Key {
	return q.orderID
}

func (q GetPickupStatusQuery) StoreID() kernel.Key {
	return q.storeID
}

func (q GetPickupStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetPickupStatusQueryIsNotConstructed)
}

type GetPickupStatusQueryResponse struct {
	StoreID  string
	Store    *store.Profile
	Share    order.Assignment
	PickedUp bool
}
