package commands

import (
	"errors"

	"localstore/internal/pkg/guard"
)

var ErrExpireSessionsCommandIsNotConstructed = errors.New(
	"ExpireSessionsCommand must be created via NewExpireSessionsCommand constructor",
)

// ExpireSessionsCommand removes sessions whose tokens can no longer be used.
type ExpireSessionsCommand struct {
	guard guard.ConstructorGuard
}

func NewExpireSessionsCommand() ExpireSessionsCommand {
	return ExpireSessionsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c ExpireSessionsCommand) Validate() error {
	return c.guard.Validate(ErrExpireSessionsCommandIsNotConstructed)
}
