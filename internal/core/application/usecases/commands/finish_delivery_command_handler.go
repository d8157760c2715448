package commands

import (
	"context"

	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/ports"
)

// FinishDeliveryCommandHandler moves an order that is out for delivery to
// DeliveredOrders or CanceledOrders and settles the customer's payment status.
type FinishDeliveryCommandHandler struct {
	store    ports.DocumentStore
	executor PlanExecutor
}

func NewFinishDeliveryCommandHandler(store ports.DocumentStore, executor PlanExecutor) FinishDeliveryCommandHandler {
	return FinishDeliveryCommandHandler{
		store:    store,
		executor: executor,
	}
}

func (h FinishDeliveryCommandHandler) Handle(ctx context.Context, command FinishDeliveryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	phone, orderID, event := command.Phone(), command.OrderID(), command.Event()

	o, err := loadMovingOrder(ctx, h.store, phone, orderID, order.OutForDeliveryOrders, event)
	if err != nil {
		return err
	}

	target, err := order.OutForDelivery.Apply(event)
	if err != nil {
		return err
	}
	to, err := order.CollectionOf(target)
	if err != nil {
		return err
	}

	plan := movePlan(event, phone, orderID, o, order.OutForDeliveryOrders, to, target)
	return h.executor.Execute(ctx, plan)
}
