package order

import (
	"fmt"

	"localstore/internal/pkg/errs"
)

// Collection is one of a delivery partner's order subcollections.
type Collection int

const (
	UnknownCollection Collection = iota
	NewOrders
	AcceptedOrder
	OutForDeliveryOrders
	DeliveredOrders
	CanceledOrders
	RejectedOrders
)

var collectionNames = map[Collection]string{
	NewOrders:            "NewOrders",
	AcceptedOrder:        "AcceptedOrder",
	OutForDeliveryOrders: "OutForDelivery",
	DeliveredOrders:      "DeliveredOrders",
	CanceledOrders:       "CanceledOrders",
	RejectedOrders:       "RejectedOrders",
}

// mirror names under /Orders. Rejections are kept only under the partner.
var mirrorNames = map[Collection]string{
	NewOrders:            "NewOrders",
	AcceptedOrder:        "AcceptedOrders",
	OutForDeliveryOrders: "OutForDelivery",
	DeliveredOrders:      "DeliveredOrders",
	CanceledOrders:       "CanceledOrders",
}

func (c Collection) String() string {
	if name, ok := collectionNames[c]; ok {
		return name
	}
	return "Unknown"
}

func (c Collection) Validate() error {
	if _, ok := collectionNames[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("collection", fmt.Errorf("%d is not a valid collection", c))
	}
	return nil
}

// Mirror returns the name of the /Orders collection that duplicates c.
func (c Collection) Mirror() (string, bool) {
	name, ok := mirrorNames[c]
	return name, ok
}

// CollectionOf returns where an order in status s is stored.
// Packed orders stay in AcceptedOrder; packing is a flag on each store's share.
func CollectionOf(s Status) (Collection, error) {
	switch s {
	case New:
		return NewOrders, nil
	case Accepted, Packed:
		return AcceptedOrder, nil
	case OutForDelivery:
		return OutForDeliveryOrders, nil
	case Delivered:
		return DeliveredOrders, nil
	case Canceled:
		return CanceledOrders, nil
	case Rejected:
		return RejectedOrders, nil
	default:
		return UnknownCollection, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s has no collection", s),
		)
	}
}

// PartnerCollections lists every collection an order id may appear in, in
// lifecycle order.
func PartnerCollections() []Collection {
	return []Collection{NewOrders, AcceptedOrder, OutForDeliveryOrders, DeliveredOrders, CanceledOrders, RejectedOrders}
}
