package commands

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/guard"
)

var ErrCompletePickupCommandIsNotConstructed = errors.New(
	"CompletePickupCommand must be created via NewCompletePickupCommand constructor",
)

// CompletePickupCommand confirms that one store handed its share of an
// accepted order to the partner.
type CompletePickupCommand struct {
	phone   kernel.Key
	orderID kernel.Key
	storeID kernel.Key

	guard guard.ConstructorGuard
}

func NewCompletePickupCommand(phone, orderID, storeID string) (CompletePickupCommand, error) {
	p, o, keysErr := newOrderKeys(phone, orderID)
	s, storeErr := kernel.NewKey("storeId", storeID)
	if err := errors.Join(keysErr, storeErr); err != nil {
		return CompletePickupCommand{}, err
	}
	return CompletePickupCommand{
		phone:   p,
		orderID: o,
		storeID: s,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CompletePickupCommand) Phone() kernel.Key {
	return c.phone
}

func (c CompletePickupCommand) OrderID() kernel.Key {
	return c.orderID
}

func (c CompletePickupCommand) StoreID() kernel.Key {
	return c.storeID
}

func (c CompletePickupCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickupCommandIsNotConstructed)
}
