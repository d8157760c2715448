package commands

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"time"

	"localstore/internal/core/domain/docpath"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/session"
	"localstore/internal/core/ports"
	"localstore/internal/pkg/errs"
)

// ErrInvalidCredentials covers both an unknown user and a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginResult is an opened session and the token that refers to it.
type LoginResult struct {
	Session *session.Session
	Token   string
}

// LoginCommandHandler checks the password stored under the account's profile,
// persists a session and issues its token.
type LoginCommandHandler struct {
	store      ports.DocumentStore
	uowFactory SessionUoWFactory
	issuer     TokenIssuer
	clock      kernel.Clock
	ttl        time.Duration
}

func NewLoginCommandHandler(
	store ports.DocumentStore,
	uowFactory SessionUoWFactory,
	issuer TokenIssuer,
	clock kernel.Clock,
	ttl time.Duration,
) LoginCommandHandler {
	return LoginCommandHandler{
		store:      store,
		uowFactory: uowFactory,
		issuer:     issuer,
		clock:      clock,
		ttl:        ttl,
	}
}

func (h LoginCommandHandler) Handle(ctx context.Context, command LoginCommand) (LoginResult, error) {
	if err := command.Validate(); err != nil {
		return LoginResult{}, err
	}

	var raw json.RawMessage
	err := h.store.Get(ctx, docpath.Password(command.Role(), command.UserID()), &raw)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if subtle.ConstantTimeCompare([]byte(storedSecret(raw)), []byte(command.Password())) != 1 {
		return LoginResult{}, ErrInvalidCredentials
	}

	s, err := session.NewSession(command.UserID(), command.Role(), h.clock.Now(), h.ttl)
	if err != nil {
		return LoginResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return LoginResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SessionRepository().Add(ctx, s); err != nil {
		return LoginResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return LoginResult{}, err
	}

	token, err := h.issuer.Issue(s)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Session: s, Token: token}, nil
}

// storedSecret reads a password written either as a JSON string or, by older
// app versions, as a bare number.
func storedSecret(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}
