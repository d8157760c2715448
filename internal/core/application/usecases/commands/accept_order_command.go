package commands

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is a delivery partner taking a new order.
//
// Example:
//
//	cmd, err := NewAcceptOrderCommand("9876543210", "-NxOrder1")
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type AcceptOrderCommand struct {
	phone   kernel.Key
	orderID kernel.Key

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(phone, orderID string) (AcceptOrderCommand, error) {
	p, o, err := newOrderKeys(phone, orderID)
	if err != nil {
		return AcceptOrderCommand{}, err
	}
	return AcceptOrderCommand{
		phone:   p,
		orderID: o,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AcceptOrderCommand) Phone() kernel.Key {
	return c.phone
}

func (c AcceptOrderCommand) OrderID() kernel.Key {
	return c.orderID
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}
