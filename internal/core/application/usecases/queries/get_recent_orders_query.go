package queries

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/guard"
)

var ErrGetRecentOrdersQueryIsNotConstructed = errors.New(
	"GetRecentOrdersQuery must be created via NewGetRecentOrdersQuery constructor",
)

// RecentOrdersLimit caps the recent orders list.
const RecentOrdersLimit = 10

// GetRecentOrdersQuery lists the partner's latest decisions: orders accepted
// and still in progress, and orders rejected.
type GetRecentOrdersQuery struct {
	phone kernel.Key

	guard guard.ConstructorGuard
}

func NewGetRecentOrdersQuery(phone string) (GetRecentOrdersQuery, error) {
	p, err := kernel.NewKey("phone", phone)
	if err != nil {
		return GetRecentOrdersQuery{}, err
	}
	return GetRecentOrdersQuery{phone: p, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRecentOrdersQuery) Phone() kernel.Key {
	return q.phone
}

func (q GetRecentOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentOrdersQueryIsNotConstructed)
}
