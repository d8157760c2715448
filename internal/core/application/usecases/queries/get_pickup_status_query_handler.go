package queries

import (
	"context"
	"errors"

	"localstore/internal/core/domain/docpath"
	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/domain/model/store"
	"localstore/internal/core/ports"
	"localstore/internal/pkg/errs"
)

type GetPickupStatusQueryHandler struct {
	store ports.DocumentStore
}

func NewGetPickupStatusQueryHandler(store ports.DocumentStore) GetPickupStatusQueryHandler {
	return GetPickupStatusQueryHandler{store: store}
}

// Handle reads the share from the accepted order. A store without a profile
// is still shown, with Store left nil.
func (h GetPickupStatusQueryHandler) Handle(
	ctx context.Context,
	query GetPickupStatusQuery,
) (GetPickupStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPickupStatusQueryResponse{}, err
	}

	var share order.Assignment
	err := h.store.Get(ctx, docpath.PartnerPickup(query.Phone(), query.OrderID(), query.StoreID()), &share)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return GetPickupStatusQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("storeId", query.StoreID().String(), err)
	}
	if err != nil {
		return GetPickupStatusQueryResponse{}, err
	}

	resp := GetPickupStatusQueryResponse{
		StoreID:  query.StoreID().String(),
		Share:    share,
		PickedUp: share.PickUp,
	}

	var profile store.Profile
	err = h.store.Get(ctx, docpath.StoreProfile(query.StoreID()), &profile)
	switch {
	case err == nil:
		resp.Store = &profile
	case !errors.Is(err, errs.ErrObjectNotFound):
		return GetPickupStatusQueryResponse{}, err
	}
	return resp, nil
}
