package commands

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand is a delivery partner declining a new order.
type RejectOrderCommand struct {
	phone   kernel.Key
	orderID kernel.Key

	guard guard.ConstructorGuard
}

func NewRejectOrderCommand(phone, orderID string) (RejectOrderCommand, error) {
	p, o, err := newOrderKeys(phone, orderID)
	if err != nil {
		return RejectOrderCommand{}, err
	}
	return RejectOrderCommand{
		phone:   p,
		orderID: o,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RejectOrderCommand) Phone() kernel.Key {
	return c.phone
}

func (c RejectOrderCommand) OrderID() kernel.Key {
	return c.orderID
}

func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}
