package commands

import (
	"context"

	"localstore/internal/core/domain/model/session"
	"localstore/internal/core/domain/transition"
)

// PlanExecutor issues a transition plan against the document store.
type PlanExecutor interface {
	Execute(ctx context.Context, plan *transition.Plan) error
}

// AlertForgetter silences the new-order alert of an order once the partner
// has decided on it.
type AlertForgetter interface {
	Forget(ctx context.Context, phone, orderID string)
}

// TokenIssuer turns a stored session into the bearer token handed to the client.
type TokenIssuer interface {
	Issue(s *session.Session) (string, error)
}
