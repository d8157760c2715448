package commands

import (
	"context"
	"errors"
	"time"

	"localstore/internal/core/domain/docpath"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/domain/model/store"
	"localstore/internal/core/domain/transition"
	"localstore/internal/core/ports"
	"localstore/internal/pkg/errs"
)

type pickupPatch struct {
	PickUp          bool   `json:"pickUp"`
	PickupTimestamp string `json:"pickupTimestamp"`
}

// PickupPolicy decides when an accepted order counts as packed.
type PickupPolicy struct {
	// RequireAllStores delays "Order Packed" until every store of the order
	// has handed its share over. By default the first pickup is enough.
	RequireAllStores bool
}

// CompletePickupCommandHandler marks a store's share as picked up, tells the
// customer the order is packed and files the store's record under its
// PreviousOrders archive.
type CompletePickupCommandHandler struct {
	store    ports.DocumentStore
	executor PlanExecutor
	clock    kernel.Clock
	policy   PickupPolicy
}

func NewCompletePickupCommandHandler(
	store ports.DocumentStore,
	executor PlanExecutor,
	clock kernel.Clock,
	policy PickupPolicy,
) CompletePickupCommandHandler {
	return CompletePickupCommandHandler{
		store:    store,
		executor: executor,
		clock:    clock,
		policy:   policy,
	}
}

func (h CompletePickupCommandHandler) Handle(ctx context.Context, command CompletePickupCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	phone, orderID, storeID := command.Phone(), command.OrderID(), command.StoreID()

	o, err := loadOrder(ctx, h.store, phone, orderID, order.AcceptedOrder, order.CompletePickup)
	if err != nil {
		return err
	}
	share, ok := o.StoresWithProducts[storeID.String()]
	if !ok {
		return errs.NewObjectNotFoundError("storeId", storeID.String())
	}

	// Missing once a previous run archived it; the rest of the plan still applies.
	var record store.Order
	err = h.store.Get(ctx, docpath.StoreNewOrder(storeID, orderID), &record)
	hasRecord := err == nil
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	pickedAt := pickupTime(share, h.clock.Now())
	ts := kernel.Timestamp(pickedAt)

	share.PickUp = true
	share.PickupTimestamp = ts
	updated := o.Clone()
	updated.StoresWithProducts[storeID.String()] = share
	picked, total := updated.Pickups()

	plan := transition.NewPlan(order.CompletePickup.String(), orderID.String(), phone.String()).
		Patch(docpath.PartnerPickup(phone, orderID, storeID), pickupPatch{PickUp: true, PickupTimestamp: ts})

	if !h.policy.RequireAllStores || picked == total {
		if path, ok := docpath.Mirror(order.AcceptedOrder, orderID); ok {
			plan.Patch(path, statusPatch{Status: order.Packed.RecordLabel()})
		}
		notifyCustomer(plan, o, order.Packed)
	}

	if hasRecord {
		plan.
			Put(docpath.StoreArchivedOrder(storeID, store.ArchiveDayOf(pickedAt), orderID), record.Completed()).
			Retire(docpath.StoreNewOrder(storeID, orderID))
	}

	return h.executor.Execute(ctx, plan)
}

// pickupTime is when the share was first picked up. A share a previous run
// already stamped keeps its time, in the location of now.
func pickupTime(share order.Assignment, now time.Time) time.Time {
	if !share.PickUp || share.PickupTimestamp == "" {
		return now
	}
	t, err := time.Parse(time.RFC3339Nano, share.PickupTimestamp)
	if err != nil {
		return now
	}
	return t.In(now.Location())
}
