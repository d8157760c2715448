package commands

import (
	"errors"
	"strings"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/session"
	"localstore/internal/pkg/errs"
	"localstore/internal/pkg/guard"
)

var ErrLoginCommandIsNotConstructed = errors.New(
	"LoginCommand must be created via NewLoginCommand constructor",
)

// LoginCommand carries credentials typed by a delivery partner (phone number)
// or a store partner (store id).
type LoginCommand struct {
	role     session.Role
	userID   kernel.Key
	password string

	guard guard.ConstructorGuard
}

// NewLoginCommand rejects blank fields before anything is looked up.
func NewLoginCommand(role, userID, password string) (LoginCommand, error) {
	r, roleErr := session.ParseRole(role)
	u, userErr := kernel.NewKey("userId", userID)
	var passwordErr error
	if strings.TrimSpace(password) == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(roleErr, userErr, passwordErr); err != nil {
		return LoginCommand{}, err
	}
	return LoginCommand{
		role:     r,
		userID:   u,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c LoginCommand) Role() session.Role {
	return c.role
}

func (c LoginCommand) UserID() kernel.Key {
	return c.userID
}

func (c LoginCommand) Password() string {
	return c.password
}

func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}
