// Package services holds domain logic that spans several models.
//
// The package includes:
//   - OrderSplitter: divides an accepted order's items between the stores that sell them
package services
