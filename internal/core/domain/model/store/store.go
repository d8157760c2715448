// Package store holds the store partner's view of orders and its profile.
package store

import (
	"encoding/json"
	"slices"
	"time"

	"localstore/internal/core/domain/model/order"
)

// Record statuses of a store's NewOrder entries.
const (
	StatusNewOrder  = "New Order"
	StatusCompleted = "Completed"
)

// Account is the part of profile/account that is safe to expose. The password
// lives next to it and is only ever read by login.
type Account struct {
	UserID string `json:"userId"`
}

// Profile is /Accounts/Stores/{storeId}/profile.
type Profile struct {
	Categories []string        `json:"categories,omitempty"`
	Account    Account         `json:"account"`
	StoreInfo  json.RawMessage `json:"storeInfo,omitempty"`
	Address    json.RawMessage `json:"address,omitempty"`
	Documents  json.RawMessage `json:"documents,omitempty"`
}

// Sells reports whether the store stocks category.
func (p Profile) Sells(category string) bool {
	return slices.Contains(p.Categories, category)
}

// Entry is one store as listed under /Accounts/Stores.
type Entry struct {
	Profile *Profile `json:"profile,omitempty"`
}

// Order is the record a store receives under Orders/NewOrder/{orderId} and
// later finds archived under PreviousOrders/{yyyy}/{mm}/{dd}/{orderId}.
type Order struct {
	OrderID               string          `json:"orderId"`
	Timestamp             string          `json:"timestamp"`
	Products              order.Products  `json:"products"`
	Status                string          `json:"status"`
	DeliveryPartnerNumber string          `json:"deliveryPartnerNumber"`
	DeliveryInfo          *order.Delivery `json:"deliveryInfo,omitempty"`
}

// Completed returns the archived form of o.
func (o Order) Completed() Order {
	o.Status = StatusCompleted
	return o
}

func (o Order) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, o.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ArchiveDay is the date a completed order was filed under.
type ArchiveDay struct {
	Year  string
	Month string
	Day   string
}

// ArchiveDayOf formats t the way PreviousOrders keys are written: four-digit
// year, zero-padded month and day, in the location of t.
func ArchiveDayOf(t time.Time) ArchiveDay {
	return ArchiveDay{
		Year:  t.Format("2006"),
		Month: t.Format("01"),
		Day:   t.Format("02"),
	}
}

func (d ArchiveDay) String() string {
	return d.Year + "-" + d.Month + "-" + d.Day
}
