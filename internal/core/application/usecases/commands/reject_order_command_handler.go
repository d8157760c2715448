package commands

import (
	"context"
	"fmt"

	"localstore/internal/core/domain/docpath"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/domain/model/partner"
	"localstore/internal/core/domain/transition"
	"localstore/internal/core/ports"
)

// RejectOrderCommandHandler records the rejection, returns the untouched order
// to the shared /Orders/NewOrders queue and puts the partner back among those
// waiting for orders.
type RejectOrderCommandHandler struct {
	store    ports.DocumentStore
	executor PlanExecutor
	alerts   AlertForgetter
	clock    kernel.Clock
}

func NewRejectOrderCommandHandler(
	store ports.DocumentStore,
	executor PlanExecutor,
	alerts AlertForgetter,
	clock kernel.Clock,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		store:    store,
		executor: executor,
		alerts:   alerts,
		clock:    clock,
	}
}

func (h RejectOrderCommandHandler) Handle(ctx context.Context, command RejectOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	phone, orderID := command.Phone(), command.OrderID()

	o, err := loadOrder(ctx, h.store, phone, orderID, order.NewOrders, order.Reject)
	if err != nil {
		return err
	}

	now := h.clock.Now()
	ts := kernel.Timestamp(now)

	rejected := o.WithStatus(order.Rejected)
	rejected.Timestamp = ts
	rejected.RejectionID = fmt.Sprintf("%s-%d", orderID, now.UnixMilli())

	plan := transition.NewPlan(order.Reject.String(), orderID.String(), phone.String()).
		Put(docpath.PartnerOrder(phone, order.RejectedOrders, orderID), rejected)
	if path, ok := docpath.Mirror(order.NewOrders, orderID); ok {
		plan.Put(path, o)
	}
	plan.
		Put(docpath.RegistryEntry(partner.WaitingForOrders, phone), partner.RegistryEntry{
			PhoneNumber: phone.String(),
			Status:      partner.EntryWaiting,
			Timestamp:   ts,
		}).
		Remove(docpath.RegistryEntry(partner.OrderDelivering, phone)).
		Retire(docpath.PartnerOrder(phone, order.NewOrders, orderID))

	if err = h.executor.Execute(ctx, plan); err != nil {
		return err
	}

	h.alerts.Forget(ctx, phone.String(), orderID.String())
	return nil
}
