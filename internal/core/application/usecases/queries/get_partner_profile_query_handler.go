package queries

import (
	"context"

	"localstore/internal/core/domain/docpath"
	"localstore/internal/core/domain/model/partner"
	"localstore/internal/core/ports"
)

type GetPartnerProfileQueryHandler struct {
	store ports.DocumentStore
}

func NewGetPartnerProfileQueryHandler(store ports.DocumentStore) GetPartnerProfileQueryHandler {
	return GetPartnerProfileQueryHandler{store: store}
}

func (h GetPartnerProfileQueryHandler) Handle(
	ctx context.Context,
	query GetPartnerProfileQuery,
) (GetPartnerProfileQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPartnerProfileQueryResponse{}, err
	}

	var profile partner.Profile
	if err := h.store.Get(ctx, docpath.PartnerProfile(query.Phone()), &profile); err != nil {
		return GetPartnerProfileQueryResponse{}, err
	}

	return GetPartnerProfileQueryResponse{
		Phone:        query.Phone().String(),
		Availability: profile.Availability().String(),
		Profile:      profile,
	}, nil
}
