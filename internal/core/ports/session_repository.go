package ports

import (
	"context"
	"time"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/session"
)

// SessionRepository persists open sessions. A token is honoured only while
// its session is stored.
type SessionRepository interface {
	Add(ctx context.Context, s *session.Session) error
	Get(ctx context.Context, id kernel.UUID) (*session.Session, error)
	Delete(ctx context.Context, id kernel.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
