package queries

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/guard"
)

var ErrGetPartnerOrderQueryIsNotConstructed = errors.New(
	"GetPartnerOrderQuery must be created via NewGetPartnerOrderQuery constructor",
)

// GetPartnerOrderQuery finds one of the partner's orders wherever it currently is.
type GetPartnerOrderQuery struct {
	phone   kernel.Key
	orderID kernel.Key

	guard guard.ConstructorGuard
}

func NewGetPartnerOrderQuery(phone, orderID string) (GetPartnerOrderQuery, error) {
	p, phoneErr := kernel.NewKey("phone", phone)
	o, orderErr := kernel.NewKey("orderId", orderID)
	if err := errors.Join(phoneErr, orderErr); err != nil {
		return GetPartnerOrderQuery{}, err
	}
	return GetPartnerOrderQuery{phone: p, orderID: o, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPartnerOrderQuery) Phone() kernel.Key {
	return q.phone
}

func (q GetPartnerOrderQuery) OrderID() kernel.Key {
	return q.orderID
}

func (q GetPartnerOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetPartnerOrderQueryIsNotConstructed)
}
