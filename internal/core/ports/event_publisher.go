package ports

import (
	"context"

	"localstore/internal/core/domain/transition"
)

// EventPublisher announces transitions that ran to completion.
type EventPublisher interface {
	Publish(ctx context.Context, event transition.Completed) error
}
