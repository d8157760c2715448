package order

import (
	"fmt"

	"localstore/internal/pkg/errs"
)

// Status is the lifecycle state of an order from the delivery partner's side.
//
//	New ──accept──> Accepted ──pickup──> Packed ──start──> OutForDelivery ──complete──> Delivered
//	 │                 │                    ▲                    │
//	 │                 └───────start────────┼──> OutForDelivery  └──cancel──> Canceled
//	 └──reject──> Rejected                  └─pickup (next store)
type Status int

const (
	Unknown Status = iota
	New
	Accepted
	Packed
	OutForDelivery
	Delivered
	Canceled
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		New:            "New",
		Accepted:       "Accepted",
		Packed:         "Packed",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Canceled:       "Canceled",
		Rejected:       "Rejected",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s Status) Validate() error {
	if s <= Unknown || s > Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no event can move the order any further.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled || s == Rejected
}

// RecordLabel is the "status" value written into the order document when it
// enters s.
func (s Status) RecordLabel() string {
	switch s {
	case Accepted:
		return "Accepted"
	case Packed:
		return "Order Packed"
	case OutForDelivery:
		return "Out For Delivery"
	case Delivered:
		return "Delivered"
	case Canceled:
		return "Canceled"
	case Rejected:
		return "Rejected"
	default:
		return ""
	}
}

// CustomerLabel is the status shown to the customer in their own order list.
// Rejection is invisible to the customer: the order simply goes back to the queue.
func (s Status) CustomerLabel() (string, bool) {
	switch s {
	case Accepted:
		return "Order Confirmed", true
	case Packed:
		return "Order Packed", true
	case OutForDelivery:
		return "Out For Delivery", true
	case Delivered:
		return "Delivered", true
	case Canceled:
		return "Canceled", true
	default:
		return "", false
	}
}

// PaymentLabel is the payment status patched on the customer's order once the
// order reaches a terminal delivery state.
func (s Status) PaymentLabel() (string, bool) {
	switch s {
	case Delivered:
		return "completed", true
	case Canceled:
		return "Canceled", true
	default:
		return "", false
	}
}

// Event is something that happens to an order.
type Event int

const (
	UnknownEvent Event = iota
	Accept
	Reject
	CompletePickup
	StartDelivery
	CompleteDelivery
	CancelDelivery
)

func (e Event) String() string {
	switch e {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	case CompletePickup:
		return "complete_pickup"
	case StartDelivery:
		return "start_delivery"
	case CompleteDelivery:
		return "complete_delivery"
	case CancelDelivery:
		return "cancel_delivery"
	default:
		return "unknown"
	}
}

//nolint:exhaustive // missing pairs are rejected transitions
var transitions = map[Status]map[Event]Status{
	New: {
		Accept: Accepted,
		Reject: Rejected,
	},
	Accepted: {
		CompletePickup: Packed,
		StartDelivery:  OutForDelivery,
	},
	Packed: {
		CompletePickup: Packed,
		StartDelivery:  OutForDelivery,
	},
	OutForDelivery: {
		CompleteDelivery: Delivered,
		CancelDelivery:   Canceled,
	},
}

// Apply returns the status an order moves to when e happens in status s.
// Pairs missing from the transition table are rejected with ErrValueIsInvalid.
func (s Status) Apply(e Event) (Status, error) {
	if next, ok := transitions[s][e]; ok {
		return next, nil
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s does not allow %s", s, e),
	)
}

// CanApply is Apply without the result.
func (s Status) CanApply(e Event) bool {
	_, ok := transitions[s][e]
	return ok
}
