// Package docpath builds the document store paths the service reads and writes.
//
// Paths are returned without the ".json" suffix; the store adapter adds it.
// Every variable segment is a kernel.Key, so a path never contains a
// separator or a character the store would reject.
package docpath

import (
	"strings"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/domain/model/partner"
	"localstore/internal/core/domain/model/session"
	"localstore/internal/core/domain/model/store"
)

const (
	accounts        = "/Accounts"
	deliveryPartner = accounts + "/DeliveryPartner"
	stores          = accounts + "/Stores"
	users           = accounts + "/Users"
	onlineRegistry  = deliveryPartner + "/OnlineDeliveryPartner"
	mirrors         = "/Orders"
)

func join(parts ...string) string {
	return strings.Join(parts, "/")
}

// Stores is the whole store tree, read to match order items to stores.
func Stores() string {
	return stores
}

func StoreProfile(storeID kernel.Key) string {
	return join(stores, storeID.String(), "profile")
}

// StoreNewOrders holds the orders a store still has to hand over.
func StoreNewOrders(storeID kernel.Key) string {
	return join(stores, storeID.String(), "Orders", "NewOrder")
}

func StoreNewOrder(storeID kernel.Key, orderID kernel.Key) string {
	return join(StoreNewOrders(storeID), orderID.String())
}

// StoreArchive addresses PreviousOrders at any depth: no parts for the list of
// years, then year, month and day.
func StoreArchive(storeID kernel.Key, parts ...string) string {
	return join(append([]string{stores, storeID.String(), "Orders", "PreviousOrders"}, parts...)...)
}

func StoreArchiveDay(storeID kernel.Key, day store.ArchiveDay) string {
	return StoreArchive(storeID, day.Year, day.Month, day.Day)
}

func StoreArchivedOrder(storeID kernel.Key, day store.ArchiveDay, orderID kernel.Key) string {
	return join(StoreArchiveDay(storeID, day), orderID.String())
}

func PartnerProfile(phone kernel.Key) string {
	return join(deliveryPartner, phone.String(), "profile")
}

func PartnerOrders(phone kernel.Key, c order.Collection) string {
	return join(deliveryPartner, phone.String(), "Orders", c.String())
}

func PartnerOrder(phone kernel.Key, c order.Collection, orderID kernel.Key) string {
	return join(PartnerOrders(phone, c), orderID.String())
}

// PartnerPickup is one store's share of an accepted order.
func PartnerPickup(phone, orderID, storeID kernel.Key) string {
	return join(PartnerOrder(phone, order.AcceptedOrder, orderID), "storesWithProducts", storeID.String())
}

func Registry(r partner.Registry) string {
	return join(onlineRegistry, r.String())
}

func RegistryEntry(r partner.Registry, phone kernel.Key) string {
	return join(Registry(r), phone.String())
}

// Mirror returns the /Orders copy of orderID in c. ok is false for
// collections without a mirror.
func Mirror(c order.Collection, orderID kernel.Key) (string, bool) {
	name, ok := c.Mirror()
	if !ok {
		return "", false
	}
	return join(mirrors, name, orderID.String()), true
}

func MirrorCollection(c order.Collection) (string, bool) {
	name, ok := c.Mirror()
	if !ok {
		return "", false
	}
	return join(mirrors, name), true
}

// UserOrder is the customer's own copy of an order.
func UserOrder(userID, orderAddress kernel.Key) string {
	return join(users, userID.String(), "Orders", orderAddress.String())
}

func UserPayment(userID, orderAddress kernel.Key) string {
	return join(UserOrder(userID, orderAddress), "payment")
}

// Password is the stored login secret of a user in role.
func Password(role session.Role, userID kernel.Key) string {
	return join(accounts, role.AccountRoot(), userID.String(), "profile", "account", "password")
}
