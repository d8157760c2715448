package inmem

import (
	"context"
	"sync"
	"time"

	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/session"
	"localstore/internal/core/ports"
	"localstore/internal/pkg/errs"
)

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]*session.Session)}
}

func (r *SessionRepository) Add(ctx context.Context, s *session.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID().String()] = s
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id kernel.UUID) (*session.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("session", id.String())
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id.String()]; !ok {
		return errs.NewObjectNotFoundError("session", id.String())
	}
	delete(r.sessions, id.String())
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, s := range r.sessions {
		if s.IsExpired(now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// UnitOfWorkFactory hands out units of work over shared in-memory
// repositories. There is no transaction: changes apply as they are made and
// Rollback does not undo them.
type UnitOfWorkFactory struct {
	journal  *JournalRepository
	sessions *SessionRepository
}

func NewUnitOfWorkFactory(journal *JournalRepository, sessions *SessionRepository) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{journal: journal, sessions: sessions}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return unitOfWork{f: f}
}

type unitOfWork struct {
	f *UnitOfWorkFactory
}

func (unitOfWork) Begin(ctx context.Context) error              { return ctx.Err() }
func (unitOfWork) Commit(ctx context.Context) error             { return ctx.Err() }
func (unitOfWork) Rollback(context.Context) error               { return nil }
func (u unitOfWork) JournalRepository() ports.JournalRepository { return u.f.journal }
func (u unitOfWork) SessionRepository() ports.SessionRepository { return u.f.sessions }
