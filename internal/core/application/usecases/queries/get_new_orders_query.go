package queries

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/guard"
)

var ErrGetNewOrdersQueryIsNotConstructed = errors.New(
	"GetNewOrdersQuery must be created via NewGetNewOrdersQuery constructor",
)

// GetNewOrdersQuery lists the orders offered to a partner and not yet decided on.
type GetNewOrdersQuery struct {
	phone kernel.Key

	guard guard.ConstructorGuard
}

func NewGetNewOrdersQuery(phone string) (GetNewOrdersQuery, error) {
	p, err := kernel.NewKey("phone", phone)
	if err != nil {
		return GetNewOrdersQuery{}, err
	}
	return GetNewOrdersQuery{phone: p, guard: guard.NewConstructorGuard()}, nil
}

func (q GetNewOrdersQuery) Phone() kernel.Key {
	return q.phone
}

func (q GetNewOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetNewOrdersQueryIsNotConstructed)
}
