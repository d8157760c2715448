package commands

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/guard"
)

var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

// StartDeliveryCommand is the partner leaving with a picked up order.
type StartDeliveryCommand struct {
	phone   kernel.Key
	orderID kernel.Key

	guard guard.ConstructorGuard
}

func NewStartDeliveryCommand(phone, orderID string) (StartDeliveryCommand, error) {
	p, o, err := newOrderKeys(phone, orderID)
	if err != nil {
		return StartDeliveryCommand{}, err
	}
	return StartDeliveryCommand{
		phone:   p,
		orderID: o,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c StartDeliveryCommand) Phone() kernel.Key {
	return c.phone
}

func (c StartDeliveryCommand) OrderID() kernel.Key {
	return c.orderID
}

func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}
