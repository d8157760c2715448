package commands

import (
	"context"

	"localstore/internal/core/domain/model/kernel"
)

type ExpireSessionsCommandHandler struct {
	uowFactory SessionUoWFactory
	clock      kernel.Clock
}

func NewExpireSessionsCommandHandler(uowFactory SessionUoWFactory, clock kernel.Clock) ExpireSessionsCommandHandler {
	return ExpireSessionsCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle returns how many sessions were removed.
func (h ExpireSessionsCommandHandler) Handle(ctx context.Context, command ExpireSessionsCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.SessionRepository().DeleteExpired(ctx, h.clock.Now())
	if err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return removed, nil
}
