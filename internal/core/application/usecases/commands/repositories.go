// Package commands contains the operations that change state: order lifecycle
// transitions, partner availability and sessions.
//
// Lifecycle handlers read the order, build a transition.Plan from a local copy
// and hand it to a PlanExecutor. They never write to the document store
// themselves, except for the claim that guards acceptance.
package commands

import (
	"context"

	"localstore/internal/core/ports"
)

// Unit of Work interfaces scope session changes to one local transaction.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SessionRepoFactory provides access to the session repository within a transaction.
	SessionRepoFactory interface {
		SessionRepository() ports.SessionRepository
	}

	// SessionUoW manages transactions for session operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.SessionRepository().Add(ctx, s)
	//   err = uow.Commit(ctx)
	SessionUoW interface {
		TxManager
		SessionRepoFactory
	}

	// SessionUoWFactory creates new session unit of work instances.
	SessionUoWFactory interface {
		Create() SessionUoW
	}
)
