package inmem_test

import (
	"context"
	"testing"
	"time"

	"localstore/internal/adapters/out/inmem"
	"localstore/internal/core/domain/model/journal"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/domain/model/session"
	"localstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestSeenSet(t *testing.T) {
	ctx := t.Context()
	s := inmem.NewSeenSet()

	require.NoError(t, s.Add(ctx, "p1", "o2", "o1", "o2"))
	require.NoError(t, s.Add(ctx, "p2", "o9"))

	members, err := s.Members(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"o1", "o2"}, members)

	require.NoError(t, s.Remove(ctx, "p1", "o1", "o2", "o3"))
	members, err = s.Members(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, members)

	members, err = s.Members(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, []string{"o9"}, members)
}

func TestSeenSet_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := inmem.NewSeenSet().Members(ctx, "p1")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestJournalRepository(t *testing.T) {
	ctx := t.Context()
	repo := inmem.NewJournalRepository()
	older, err := journal.NewEntry(kernel.NewUUID(), "accept", "o1", "p1", 3, base)
	require.NoError(t, err)
	newer, err := journal.NewEntry(kernel.NewUUID(), "start", "o1", "p1", 5, base.Add(time.Minute))
	require.NoError(t, err)
	other, err := journal.NewEntry(kernel.NewUUID(), "accept", "o2", "p1", 3, base)
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Update(ctx, older), errs.ErrObjectNotFound)
	for _, e := range []*journal.Entry{older, newer, other} {
		require.NoError(t, repo.Add(ctx, e))
	}
	require.NoError(t, older.Succeed(base.Add(time.Second)))
	require.NoError(t, repo.Update(ctx, older))

	got, err := repo.Get(ctx, older.ID())
	require.NoError(t, err)
	assert.Equal(t, journal.Succeeded, got.Outcome())

	runs, err := repo.ListByOrder(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "start", runs[0].Transition())
	assert.Equal(t, "accept", runs[1].Transition())

	_, err = repo.Get(ctx, kernel.NewUUID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestSessionRepository(t *testing.T) {
	ctx := t.Context()
	repo := inmem.NewSessionRepository()
	short, err := session.NewSession(kernel.MustKey("p1"), session.DeliveryPartner, base, time.Minute)
	require.NoError(t, err)
	long, err := session.NewSession(kernel.MustKey("s1"), session.StorePartner, base, time.Hour)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, short))
	require.NoError(t, repo.Add(ctx, long))

	removed, err := repo.DeleteExpired(ctx, base.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.Get(ctx, short.ID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	require.NoError(t, repo.Delete(ctx, long.ID()))
	assert.ErrorIs(t, repo.Delete(ctx, long.ID()), errs.ErrObjectNotFound)
}

func TestUnitOfWorkFactory_SharesRepositories(t *testing.T) {
	ctx := t.Context()
	sessions := inmem.NewSessionRepository()
	factory := inmem.NewUnitOfWorkFactory(inmem.NewJournalRepository(), sessions)
	s, err := session.NewSession(kernel.MustKey("p1"), session.DeliveryPartner, base, time.Hour)
	require.NoError(t, err)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.SessionRepository().Add(ctx, s))
	require.NoError(t, uow.Commit(ctx))
	require.NoError(t, uow.Rollback(ctx))

	_, err = sessions.Get(ctx, s.ID())
	assert.NoError(t, err)
}
