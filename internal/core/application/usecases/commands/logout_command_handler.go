package commands

import (
	"context"
	"errors"

	"localstore/internal/pkg/errs"
)

type LogoutCommandHandler struct {
	uowFactory SessionUoWFactory
}

func NewLogoutCommandHandler(uowFactory SessionUoWFactory) LogoutCommandHandler {
	return LogoutCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deletes the session. Logging out twice is not an error.
func (h LogoutCommandHandler) Handle(ctx context.Context, command LogoutCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	err := uow.SessionRepository().Delete(ctx, command.SessionID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	return uow.Commit(ctx)
}
