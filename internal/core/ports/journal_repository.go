package ports

import (
	"context"

	"localstore/internal/core/domain/model/journal"
	"localstore/internal/core/domain/model/kernel"
)

// JournalRepository stores transition runs.
type JournalRepository interface {
	Add(ctx context.Context, entry *journal.Entry) error
	Update(ctx context.Context, entry *journal.Entry) error
	Get(ctx context.Context, id kernel.UUID) (*journal.Entry, error)

	// ListByOrder returns the runs for orderID, most recent first.
	ListByOrder(ctx context.Context, orderID string) ([]*journal.Entry, error)
}
