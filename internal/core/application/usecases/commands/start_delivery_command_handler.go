package commands

import (
	"context"

	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/ports"
)

// StartDeliveryCommandHandler moves an accepted order to OutForDelivery.
type StartDeliveryCommandHandler struct {
	store    ports.DocumentStore
	executor PlanExecutor
}

func NewStartDeliveryCommandHandler(store ports.DocumentStore, executor PlanExecutor) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		store:    store,
		executor: executor,
	}
}

func (h StartDeliveryCommandHandler) Handle(ctx context.Context, command StartDeliveryCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	phone, orderID := command.Phone(), command.OrderID()

	o, err := loadMovingOrder(ctx, h.store, phone, orderID, order.AcceptedOrder, order.StartDelivery)
	if err != nil {
		return err
	}

	plan := movePlan(order.StartDelivery, phone, orderID, o, order.AcceptedOrder, order.OutForDeliveryOrders, order.OutForDelivery)
	return h.executor.Execute(ctx, plan)
}
