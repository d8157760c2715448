package commands

import (
	"errors"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/guard"
)

var ErrLogoutCommandIsNotConstructed = errors.New(
	"LogoutCommand must be created via NewLogoutCommand constructor",
)

// LogoutCommand closes a session. Tokens that refer to it stop working.
type LogoutCommand struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewLogoutCommand(sessionID kernel.UUID) (LogoutCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return LogoutCommand{}, err
	}
	return LogoutCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c LogoutCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c LogoutCommand) Validate() error {
	return c.guard.Validate(ErrLogoutCommandIsNotConstructed)
}
