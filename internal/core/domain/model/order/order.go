package order

import (
	"encoding/json"
	"maps"
	"time"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/errs"
)

// Payment is the order's payment block. Status is set on the customer's copy
// when the delivery finishes.
type Payment struct {
	Method         string       `json:"method,omitempty"`
	Subtotal       kernel.Money `json:"subtotal,omitzero"`
	DeliveryCharge kernel.Money `json:"deliveryCharge,omitzero"`
	Total          kernel.Money `json:"total,omitzero"`
	Status         string       `json:"status,omitempty"`

	extra fields
}

type paymentObject Payment

func (p Payment) MarshalJSON() ([]byte, error) {
	obj := paymentObject(p)
	return encodeObject(&obj, p.extra)
}

func (p *Payment) UnmarshalJSON(data []byte) error {
	var obj paymentObject
	extra, err := decodeObject(data, &obj, "method", "subtotal", "deliveryCharge", "total", "status")
	if err != nil {
		return err
	}
	*p = Payment(obj)
	p.extra = extra
	return nil
}

// Delivery describes how the order reaches the customer. Stores receive it
// verbatim as deliveryInfo.
type Delivery struct {
	Method        string       `json:"method,omitempty"`
	EstimatedTime string       `json:"estimatedTime,omitempty"`
	Charge        kernel.Money `json:"charge,omitzero"`

	extra fields
}

type deliveryObject Delivery

func (d Delivery) MarshalJSON() ([]byte, error) {
	obj := deliveryObject(d)
	return encodeObject(&obj, d.extra)
}

func (d *Delivery) UnmarshalJSON(data []byte) error {
	var obj deliveryObject
	extra, err := decodeObject(data, &obj, "method", "estimatedTime", "charge")
	if err != nil {
		return err
	}
	*d = Delivery(obj)
	d.extra = extra
	return nil
}

// Assignment is one store's share of an accepted order, kept under
// storesWithProducts/{storeId}.
type Assignment struct {
	Categories      []string `json:"categories,omitempty"`
	UserID          string   `json:"userId"`
	Products        Products `json:"products,omitempty"`
	PickUp          bool     `json:"pickUp"`
	PickupTimestamp string   `json:"pickupTimestamp,omitempty"`
}

// Order is the order document as stored in every partner collection and
// mirror. Fields the customer app writes that are not listed here survive a
// decode and re-encode unchanged.
type Order struct {
	ID                 string                `json:"orderId"`
	Status             string                `json:"status,omitempty"`
	Items              map[string]Item       `json:"items,omitempty"`
	Address            json.RawMessage       `json:"address,omitempty"`
	Payment            *Payment              `json:"payment,omitempty"`
	UserID             string                `json:"userId,omitempty"`
	OrderAddress       string                `json:"orderAddress,omitempty"`
	Delivery           *Delivery             `json:"delivery,omitempty"`
	Timestamp          string                `json:"timestamp,omitempty"`
	StoresWithProducts map[string]Assignment `json:"storesWithProducts,omitempty"`
	DeliveryPartnerID  string                `json:"deliveryPartnerId,omitempty"`
	RejectionID        string                `json:"rejectionId,omitempty"`

	extra fields
}

type orderObject Order

var orderKeys = []string{
	"orderId", "status", "items", "address", "payment", "userId", "orderAddress",
	"delivery", "timestamp", "storesWithProducts", "deliveryPartnerId", "rejectionId",
}

func (o Order) MarshalJSON() ([]byte, error) {
	obj := orderObject(o)
	return encodeObject(&obj, o.extra)
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var obj orderObject
	extra, err := decodeObject(data, &obj, orderKeys...)
	if err != nil {
		return err
	}
	*o = Order(obj)
	o.extra = extra
	return nil
}

// Validate checks the fields every transition relies on.
func (o *Order) Validate() error {
	if o == nil {
		return errs.NewValueIsRequiredError("order")
	}
	_, err := kernel.NewKey("orderId", o.ID)
	return err
}

// Clone returns a copy whose top-level maps can be changed independently.
// Nested values are shared and treated as read-only.
func (o *Order) Clone() *Order {
	c := *o
	c.Items = maps.Clone(o.Items)
	c.StoresWithProducts = maps.Clone(o.StoresWithProducts)
	c.extra = maps.Clone(o.extra)
	if o.Payment != nil {
		p := *o.Payment
		c.Payment = &p
	}
	if o.Delivery != nil {
		d := *o.Delivery
		c.Delivery = &d
	}
	return &c
}

// WithStatus returns a copy carrying the record label of s.
func (o *Order) WithStatus(s Status) *Order {
	c := o.Clone()
	c.Status = s.RecordLabel()
	return c
}

// Customer returns the keys of the customer's own copy of the order.
// ok is false when the order carries no customer back-reference.
func (o *Order) Customer() (userID, orderAddress kernel.Key, ok bool) {
	u, err := kernel.NewKey("userId", o.UserID)
	if err != nil {
		return kernel.Key{}, kernel.Key{}, false
	}
	a, err := kernel.NewKey("orderAddress", o.OrderAddress)
	if err != nil {
		return kernel.Key{}, kernel.Key{}, false
	}
	return u, a, true
}

// Pickups counts the stores that already handed their share over.
func (o *Order) Pickups() (picked, total int) {
	for _, a := range o.StoresWithProducts {
		total++
		if a.PickUp {
			picked++
		}
	}
	return picked, total
}

// StatusIn derives the lifecycle status of o from the collection it was read from.
func (o *Order) StatusIn(c Collection) Status {
	switch c {
	case NewOrders:
		return New
	case AcceptedOrder:
		if picked, _ := o.Pickups(); picked > 0 {
			return Packed
		}
		return Accepted
	case OutForDeliveryOrders:
		return OutForDelivery
	case DeliveredOrders:
		return Delivered
	case CanceledOrders:
		return Canceled
	case RejectedOrders:
		return Rejected
	default:
		return Unknown
	}
}

// Time parses the document timestamp. Unparseable or missing timestamps
// yield the zero time.
func (o *Order) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, o.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}
