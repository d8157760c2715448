package commands

import (
	"context"
	"errors"

	"localstore/internal/core/domain/docpath"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/domain/model/partner"
	"localstore/internal/core/domain/model/store"
	"localstore/internal/core/domain/services"
	"localstore/internal/core/domain/transition"
	"localstore/internal/core/ports"
	"localstore/internal/pkg/errs"
)

// AcceptOrderCommandHandler claims a new order for a partner, hands each
// store its share and moves the order to AcceptedOrder.
//
// The claim is a conditional write of the /Orders/AcceptedOrders entry, so of
// two partners accepting the same order only one wins; the other gets
// ErrOrderAlreadyClaimed. The winner may accept again to finish a plan that
// was interrupted.
type AcceptOrderCommandHandler struct {
	store    ports.DocumentStore
	executor PlanExecutor
	alerts   AlertForgetter
	clock    kernel.Clock
	splitter services.OrderSplitter
}

func NewAcceptOrderCommandHandler(
	store ports.DocumentStore,
	executor PlanExecutor,
	alerts AlertForgetter,
	clock kernel.Clock,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		store:    store,
		executor: executor,
		alerts:   alerts,
		clock:    clock,
		splitter: services.NewOrderSplitter(),
	}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, command AcceptOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	phone, orderID := command.Phone(), command.OrderID()

	o, err := loadMovingOrder(ctx, h.store, phone, orderID, order.NewOrders, order.Accept)
	if err != nil {
		return err
	}

	claimPath, _ := docpath.Mirror(order.AcceptedOrder, orderID)
	var claimed order.Order
	etag, found, err := h.store.GetETag(ctx, claimPath, &claimed)
	if err != nil {
		return err
	}
	if found && claimed.DeliveryPartnerID != phone.String() {
		return ErrOrderAlreadyClaimed
	}

	stores := map[string]store.Entry{}
	if err = h.store.Get(ctx, docpath.Stores(), &stores); err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	split := h.splitter.Split(o.Items, stores)

	now := h.clock.Now()
	ts := kernel.Timestamp(now)

	accepted := o.WithStatus(order.Accepted)
	accepted.StoresWithProducts = split.Assignments
	accepted.DeliveryPartnerID = phone.String()

	err = h.store.PutIfMatch(ctx, claimPath, etag, accepted)
	if errors.Is(err, errs.ErrPreconditionFailed) {
		return ErrOrderAlreadyClaimed
	}
	if err != nil {
		return err
	}

	plan := transition.NewPlan(order.Accept.String(), orderID.String(), phone.String())
	for _, id := range split.StoreIDs() {
		storeID, err := kernel.NewKey("storeId", id)
		if err != nil {
			return err
		}
		plan.Put(docpath.StoreNewOrder(storeID, orderID), store.Order{
			OrderID:               orderID.String(),
			Timestamp:             ts,
			Products:              split.Assignments[id].Products,
			Status:                store.StatusNewOrder,
			DeliveryPartnerNumber: phone.String(),
			DeliveryInfo:          o.Delivery,
		})
	}
	plan.
		Put(docpath.PartnerOrder(phone, order.AcceptedOrder, orderID), accepted).
		Put(claimPath, accepted).
		Put(docpath.RegistryEntry(partner.OrderDelivering, phone), partner.RegistryEntry{
			PhoneNumber: phone.String(),
			Status:      partner.EntryAccepted,
			Timestamp:   ts,
		}).
		Remove(docpath.RegistryEntry(partner.WaitingForOrders, phone))
	notifyCustomer(plan, o, order.Accepted)

	retireSource(plan, phone, orderID, order.NewOrders)

	if err = h.executor.Execute(ctx, plan); err != nil {
		return err
	}

	h.alerts.Forget(ctx, phone.String(), orderID.String())
	return nil
}
