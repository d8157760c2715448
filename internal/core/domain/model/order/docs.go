// Package order models a customer order as the delivery partner handles it.
//
// An order is a JSON document that moves between partner subcollections
// (NewOrders → AcceptedOrder → OutForDelivery → DeliveredOrders | CanceledOrders,
// or NewOrders → RejectedOrders). Its lifecycle Status is derived from the
// collection it currently sits in; the document's own "status" field only
// carries the label written at the last transition.
//
// The package includes:
//   - Status and Event: the lifecycle enum and the transition table
//   - Collection: partner subcollections and their /Orders mirrors
//   - Order, Item, Product, Payment, Delivery, Assignment: the document shape
//
// Documents keep fields they do not know about, so copying an order from one
// collection to another never drops data written by the customer app.
package order
