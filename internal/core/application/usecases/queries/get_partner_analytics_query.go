package queries

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetPartnerAnalyticsQueryIsNotConstructed = errors.New(
	"GetPartnerAnalyticsQuery must be created via NewGetPartnerAnalyticsQuery constructor",
)

// GetPartnerAnalyticsQuery summarises how a partner's orders ended.
type GetPartnerAnalyticsQuery struct {
	phone kernel.Key

	guard guard.ConstructorGuard
}

func NewGetPartnerAnalyticsQuery(phone string) (GetPartnerAnalyticsQuery, error) {
	p, err := kernel.NewKey("phone", phone)
	if err != nil {
		return GetPartnerAnalyticsQuery{}, err
	}
	return GetPartnerAnalyticsQuery{phone: p, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPartnerAnalyticsQuery) Phone() kernel.Key {
	return q.phone
}

func (q GetPartnerAnalyticsQuery) Validate() error {
	return q.guard.Validate(ErrGetPartnerAnalyticsQueryIsNotConstructed)
}

// OutcomeCount is how many orders ended one way and their share of the total,
// in percent with one decimal.
type OutcomeCount struct {
	Count   int
	Percent decimal.Decimal
}

type GetPartnerAnalyticsQueryResponse struct {
	Total     int
	Delivered OutcomeCount
	Canceled  OutcomeCount
	Rejected  OutcomeCount
}
