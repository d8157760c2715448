package queries

import (
	"context"

	"localstore/internal/core/domain/model/journal"
	"localstore/internal/core/ports"
)

type GetTransitionRunsQueryHandler struct {
	journal ports.JournalRepository
}

func NewGetTransitionRunsQueryHandler(journal ports.JournalRepository) GetTransitionRunsQueryHandler {
	return GetTransitionRunsQueryHandler{journal: journal}
}

func (h GetTransitionRunsQueryHandler) Handle(ctx context.Context, query GetTransitionRunsQuery) ([]*journal.Entry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.journal.ListByOrder(ctx, query.OrderID().String())
}
