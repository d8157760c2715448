package commands

import (
	"context"
	"errors"
	"fmt"

	"localstore/internal/core/domain/docpath"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/domain/transition"
	"localstore/internal/core/ports"
	"localstore/internal/pkg/errs"
)

var (
	ErrOrderAlreadyClaimed  = errors.New("order already accepted by another delivery partner")
	ErrTransitionNotAllowed = errors.New("transition not allowed")
)

type statusPatch struct {
	Status string `json:"status"`
}

// newOrderKeys validates the identifiers every order command carries.
func newOrderKeys(phone, orderID string) (kernel.Key, kernel.Key, error) {
	p, phoneErr := kernel.NewKey("phone", phone)
	o, orderErr := kernel.NewKey("orderId", orderID)
	if err := errors.Join(phoneErr, orderErr); err != nil {
		return kernel.Key{}, kernel.Key{}, err
	}
	return p, o, nil
}

// loadOrder reads orderID from the partner's collection from and checks that
// event may be applied to it. When the order sits in another collection the
// error wraps ErrTransitionNotAllowed and names its current status.
func loadOrder(
	ctx context.Context,
	store ports.DocumentStore,
	phone, orderID kernel.Key,
	from order.Collection,
	event order.Event,
) (*order.Order, error) {
	var o order.Order
	err := store.Get(ctx, docpath.PartnerOrder(phone, from, orderID), &o)
	if err == nil {
		if o.ID == "" {
			o.ID = orderID.String()
		}
		if _, err = o.StatusIn(from).Apply(event); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTransitionNotAllowed, err)
		}
		return &o, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	for _, c := range order.PartnerCollections() {
		if c == from {
			continue
		}
		var other order.Order
		if store.Get(ctx, docpath.PartnerOrder(phone, c, orderID), &other) != nil {
			continue
		}
		return nil, fmt.Errorf("%w: cannot %s order %s, it is %s",
			ErrTransitionNotAllowed, event, orderID, other.StatusIn(c))
	}
	return nil, errs.NewObjectNotFoundErrorWithCause("orderId", orderID.String(), err)
}

// loadMovingOrder is loadOrder for transitions that move the order to another
// collection. An order already written to the event's target while its mirror
// in from still exists is a move that stopped before its retirements; that
// copy is returned so the whole plan can be issued again.
func loadMovingOrder(
	ctx context.Context,
	store ports.DocumentStore,
	phone, orderID kernel.Key,
	from order.Collection,
	event order.Event,
) (*order.Order, error) {
	o, err := loadOrder(ctx, store, phone, orderID, from, event)
	if !errors.Is(err, ErrTransitionNotAllowed) {
		return o, err
	}
	moved, ok, resumeErr := unfinishedMove(ctx, store, phone, orderID, from, event)
	if resumeErr != nil {
		return nil, resumeErr
	}
	if !ok {
		return nil, err
	}
	return moved, nil
}

func unfinishedMove(
	ctx context.Context,
	store ports.DocumentStore,
	phone, orderID kernel.Key,
	from order.Collection,
	event order.Event,
) (*order.Order, bool, error) {
	target, err := (&order.Order{}).StatusIn(from).Apply(event)
	if err != nil {
		return nil, false, nil
	}
	to, err := order.CollectionOf(target)
	if err != nil || to == from {
		return nil, false, nil
	}
	mirror, ok := docpath.Mirror(from, orderID)
	if !ok {
		return nil, false, nil
	}

	var moved order.Order
	if err = store.Get(ctx, docpath.PartnerOrder(phone, to, orderID), &moved); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var stale order.Order
	if err = store.Get(ctx, mirror, &stale); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if moved.ID == "" {
		moved.ID = orderID.String()
	}
	return &moved, true, nil
}

// notifyCustomer adds the customer-facing status patches for s, if the order
// links back to the customer's copy.
func notifyCustomer(p *transition.Plan, o *order.Order, s order.Status) {
	userID, orderAddress, ok := o.Customer()
	if !ok {
		return
	}
	if label, ok := s.CustomerLabel(); ok {
		p.Patch(docpath.UserOrder(userID, orderAddress), statusPatch{Status: label})
	}
	if label, ok := s.PaymentLabel(); ok {
		p.Patch(docpath.UserPayment(userID, orderAddress), statusPatch{Status: label})
	}
}

// movePlan moves o from one partner collection to another, mirrors included,
// and stamps it with target. The partner's own copy in from is retired last.
func movePlan(
	event order.Event,
	phone, orderID kernel.Key,
	o *order.Order,
	from, to order.Collection,
	target order.Status,
) *transition.Plan {
	moved := o.WithStatus(target)

	p := transition.NewPlan(event.String(), orderID.String(), phone.String())
	p.Put(docpath.PartnerOrder(phone, to, orderID), moved)
	if path, ok := docpath.Mirror(to, orderID); ok {
		p.Put(path, moved)
	}
	notifyCustomer(p, o, target)

	retireSource(p, phone, orderID, from)
	return p
}

// retireSource deletes the mirror of from, then the partner's copy in from.
// Until the last delete lands the order can still be loaded from from.
func retireSource(p *transition.Plan, phone, orderID kernel.Key, from order.Collection) {
	if path, ok := docpath.Mirror(from, orderID); ok {
		p.Retire(path)
	}
	p.Retire(docpath.PartnerOrder(phone, from, orderID))
}
