package queries

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/guard"
)

var ErrGetTransitionRunsQueryIsNotConstructed = errors.New(
	"GetTransitionRunsQuery must be created via NewGetTransitionRunsQuery constructor",
)

// GetTransitionRunsQuery lists the journaled transitions of an order.
type GetTransitionRunsQuery struct {
	orderID kernel.Key

	guard guard.ConstructorGuard
}

func NewGetTransitionRunsQuery(orderID string) (GetTransitionRunsQuery, error) {
	o, err := kernel.NewKey("orderId", orderID)
	if err != nil {
		return GetTransitionRunsQuery{}, err
	}
	return GetTransitionRunsQuery{orderID: o, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTransitionRunsQuery) OrderID() kernel.Key {
	return q.orderID
}

func (q GetTransitionRunsQuery) Validate() error {
	return q.guard.Validate(ErrGetTransitionRunsQueryIsNotConstructed)
}
