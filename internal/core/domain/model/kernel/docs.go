// Package kernel holds the value objects shared by every aggregate of the service.
//
//   - Key: a validated path segment of the remote document store. Phone numbers,
//     order ids, store ids, user ids and customer order addresses are all keys.
//   - Money: a decimal amount that travels as a bare JSON number.
//   - UUID: identifiers generated by this service (transition runs, request ids).
//   - Clock: the time source used for every timestamp written to the store.
//
// Values are immutable and validated at construction; zero values fail Validate.
package kernel
