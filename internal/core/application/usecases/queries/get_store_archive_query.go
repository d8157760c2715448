package queries

import (
	"errors"
	"fmt"
	"strconv"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/errs"
	"localstore/internal/pkg/guard"
)

var ErrGetStoreArchiveQueryIsNotConstructed = errors.New(
	"GetStoreArchiveQuery must be created via NewGetStoreArchiveQuery constructor",
)

// ArchiveLevel is how deep a GetStoreArchiveQuery drills into PreviousOrders.
type ArchiveLevel int

const (
	ArchiveYears ArchiveLevel = iota
	ArchiveMonths
	ArchiveDays
	ArchiveOrders
)

func (l ArchiveLevel) String() string {
	switch l {
	case ArchiveYears:
		return "years"
	case ArchiveMonths:
		return "months"
	case ArchiveDays:
		return "days"
	case ArchiveOrders:
		return "orders"
	default:
		return "unknown"
	}
}

// GetStoreArchiveQuery browses a store's completed orders. With no year it
// lists years, with a year the months in it, with a month the days, and with
// a day the orders filed that day.
type GetStoreArchiveQuery struct {
	storeID kernel.Key
	parts   []string

	guard guard.ConstructorGuard
}

// NewGetStoreArchiveQuery accepts year, month and day as written in the
// archive keys or without zero padding. A later part needs all earlier ones.
func NewGetStoreArchiveQuery(storeID, year, month, day string) (GetStoreArchiveQuery, error) {
	s, err := kernel.NewKey("storeId", storeID)
	if err != nil {
		return GetStoreArchiveQuery{}, err
	}

	q := GetStoreArchiveQuery{storeID: s, guard: guard.NewConstructorGuard()}
	if year == "" {
		if month != "" || day != "" {
			return GetStoreArchiveQuery{}, errs.NewValueIsRequiredError("year")
		}
		return q, nil
	}

	y, err := archivePart("year", year, 1, 9999, 4)
	if err != nil {
		return GetStoreArchiveQuery{}, err
	}
	q.parts = append(q.parts, y)

	if month == "" {
		if day != "" {
			return GetStoreArchiveQuery{}, errs.NewValueIsRequiredError("month")
		}
		return q, nil
	}
	m, err := archivePart("month", month, 1, 12, 2)
	if err != nil {
		return GetStoreArchiveQuery{}, err
	}
	q.parts = append(q.parts, m)

	if day == "" {
		return q, nil
	}
	d, err := archivePart("day", day, 1, 31, 2)
	if err != nil {
		return GetStoreArchiveQuery{}, err
	}
	q.parts = append(q.parts, d)

	return q, nil
}

func archivePart(name, value string, minValue, maxValue, width int) (string, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if n < minValue || n > maxValue {
		return "", errs.NewValueIsOutOfRangeError(name, n, minValue, maxValue)
	}
	return fmt.Sprintf("%0*d", width, n), nil
}

func (q GetStoreArchiveQuery) StoreID() kernel.Key {
	return q.storeID
}

// Parts are the zero-padded archive keys given so far.
func (q GetStoreArchiveQuery) Parts() []string {
	return q.parts
}

func (q GetStoreArchiveQuery) Level() ArchiveLevel {
	return ArchiveLevel(len(q.parts))
}

func (q GetStoreArchiveQuery) Validate() error {
	return q.guard.Validate(ErrGetStoreArchiveQueryIsNotConstructed)
}

// GetStoreArchiveQueryResponse carries Keys for the folder levels and Orders
// for a single day.
type GetStoreArchiveQueryResponse struct {
	Level  ArchiveLevel
	Keys   []string
	Orders []StoreOrderView
}
