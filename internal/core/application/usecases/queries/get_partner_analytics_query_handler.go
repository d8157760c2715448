package queries

import (
	"context"
	"encoding/json"
	"errors"

	"localstore/internal/core/domain/docpath"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/order"
	"localstore/internal/core/ports"
	"localstore/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type GetPartnerAnalyticsQueryHandler struct {
	store ports.DocumentStore
}

func NewGetPartnerAnalyticsQueryHandler(store ports.DocumentStore) GetPartnerAnalyticsQueryHandler {
	return GetPartnerAnalyticsQueryHandler{store: store}
}

func (h GetPartnerAnalyticsQueryHandler) Handle(
	ctx context.Context,
	query GetPartnerAnalyticsQuery,
) (GetPartnerAnalyticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPartnerAnalyticsQueryResponse{}, err
	}

	delivered, err := h.count(ctx, query.Phone(), order.DeliveredOrders)
	if err != nil {
		return GetPartnerAnalyticsQueryResponse{}, err
	}
	canceled, err := h.count(ctx, query.Phone(), order.CanceledOrders)
	if err != nil {
		return GetPartnerAnalyticsQueryResponse{}, err
	}
	rejected, err := h.count(ctx, query.Phone(), order.RejectedOrders)
	if err != nil {
		return GetPartnerAnalyticsQueryResponse{}, err
	}

	total := delivered + canceled + rejected
	return GetPartnerAnalyticsQueryResponse{
		Total:     total,
		Delivered: OutcomeCount{Count: delivered, Percent: percentOf(delivered, total)},
		Canceled:  OutcomeCount{Count: canceled, Percent: percentOf(canceled, total)},
		Rejected:  OutcomeCount{Count: rejected, Percent: percentOf(rejected, total)},
	}, nil
}

func (h GetPartnerAnalyticsQueryHandler) count(ctx context.Context, phone kernel.Key, c order.Collection) (int, error) {
	var docs map[string]json.RawMessage
	err := h.store.Get(ctx, docpath.PartnerOrders(phone, c), &docs)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func percentOf(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(1)
}
