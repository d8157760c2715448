package commands

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/order"
	"localstore/internal/pkg/guard"
)

var ErrFinishDeliveryCommandIsNotConstructed = errors.New(
	"FinishDeliveryCommand must be created via NewCompleteDeliveryCommand or NewCancelDeliveryCommand",
)

// FinishDeliveryCommand ends a delivery that is under way, either handed to
// the customer or canceled.
type FinishDeliveryCommand struct {
	phone   kernel.Key
	orderID kernel.Key
	event   order.Event

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(phone, orderID string) (FinishDeliveryCommand, error) {
	return newFinishDeliveryCommand(phone, orderID, order.CompleteDelivery)
}

func NewCancelDeliveryCommand(phone, orderID string) (FinishDeliveryCommand, error) {
	return newFinishDeliveryCommand(phone, orderID, order.CancelDelivery)
}

func newFinishDeliveryCommand(phone, orderID string, event order.Event) (FinishDeliveryCommand, error) {
	p, o, err := newOrderKeys(phone, orderID)
	if err != nil {
		return FinishDeliveryCommand{}, err
	}
	return FinishDeliveryCommand{
		phone:   p,
		orderID: o,
		event:   event,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c FinishDeliveryCommand) Phone() kernel.Key {
	return c.phone
}

func (c FinishDeliveryCommand) OrderID() kernel.Key {
	return c.orderID
}

// Event is order.CompleteDelivery or order.CancelDelivery.
func (c FinishDeliveryCommand) Event() order.Event {
	return c.event
}

func (c FinishDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFinishDeliveryCommandIsNotConstructed)
}
