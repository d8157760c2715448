package queries

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/partner"
	"localstore/internal/pkg/guard"
)

var ErrGetPartnerProfileQueryIsNotConstructed = errors.New(
	"GetPartnerProfileQuery must be created via NewGetPartnerProfileQuery constructor",
)

type GetPartnerProfileQuery struct {
	phone kernel.Key

	guard guard.ConstructorGuard
}

func NewGetPartnerProfileQuery(phone string) (GetPartnerProfileQuery, error) {
	p, err := kernel.NewKey("phone", phone)
	if err != nil {
		return GetPartnerProfileQuery{}, err
	}
	return GetPartnerProfileQuery{phone: p, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPartnerProfileQuery) Phone() kernel.Key {
	return q.phone
}

func (q GetPartnerProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetPartnerProfileQueryIsNotConstructed)
}

// GetPartnerProfileQueryResponse is the profile without its account secrets.
type GetPartnerProfileQueryResponse struct {
	Phone        string
	Availability string
	Profile      partner.Profile
}
