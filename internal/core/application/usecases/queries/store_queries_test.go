package queries_test

import (
	"errors"
	"testing"
	"time"

	"localstore/internal/core/application/usecases/queries"
	"localstore/internal/core/domain/model/journal"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storeViewIDs(views []queries.StoreOrderView) []string {
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestGetStoreOrders_PendingAndSinceYesterday(t *testing.T) {
	m := newTestStore(t, storeTree)
	q, err := queries.NewGetStoreOrdersQuery("s1")
	require.NoError(t, err)

	views, err := queries.NewGetStoreOrdersQueryHandler(m, kernel.FixedClock{At: testNow}).Handle(t.Context(), q)

	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "x1", "x2"}, storeViewIDs(views))
	assert.False(t, views[0].Archived)
	assert.Equal(t, "9876543210", views[0].Order.DeliveryPartnerNumber)
	assert.True(t, views[1].Archived)
	assert.Equal(t, "Completed", views[2].Status)
}

func TestGetStoreOrders_UnknownStoreIsEmpty(t *testing.T) {
	m := newTestStore(t, storeTree)
	q, err := queries.NewGetStoreOrdersQuery("s9")
	require.NoError(t, err)

	views, err := queries.NewGetStoreOrdersQueryHandler(m, kernel.FixedClock{At: testNow}).Handle(t.Context(), q)

	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestGetStoreOrders_ReadsOnlyTwoArchiveDays(t *testing.T) {
	m := newTestStore(t, storeTree)
	q, err := queries.NewGetStoreOrdersQuery("s1")
	require.NoError(t, err)

	_, err = queries.NewGetStoreOrdersQueryHandler(m, kernel.FixedClock{At: testNow}).Handle(t.Context(), q)
	require.NoError(t, err)

	var paths []string
	for _, c := range m.Calls() {
		paths = append(paths, c.String())
	}
	assert.Equal(t, []string{
		"GET /Accounts/Stores/s1/Orders/NewOrder",
		"GET /Accounts/Stores/s1/Orders/PreviousOrders/2024/05/01",
		"GET /Accounts/Stores/s1/Orders/PreviousOrders/2024/04/30",
	}, paths)
}

func TestGetStoreArchive_DrillDown(t *testing.T) {
	m := newTestStore(t, storeTree)
	handler := queries.NewGetStoreArchiveQueryHandler(m)

	tests := []struct {
		name              string
		year, month, day  string
		wantLevel         queries.ArchiveLevel
		wantKeys, wantIDs []string
	}{
		{name: "years newest first", wantLevel: queries.ArchiveYears, wantKeys: []string{"2024", "2023"}},
		{name: "months in order", year: "2024", wantLevel: queries.ArchiveMonths, wantKeys: []string{"04", "05", "10"}},
		{name: "days of unpadded month", year: "2024", month: "4", wantLevel: queries.ArchiveDays, wantKeys: []string{"29", "30"}},
		{name: "orders of a day", year: "2024", month: "04", day: "30", wantLevel: queries.ArchiveOrders, wantIDs: []string{"x2", "x4"}},
		{name: "empty month", year: "2024", month: "06", wantLevel: queries.ArchiveDays, wantKeys: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := queries.NewGetStoreArchiveQuery("s1", tt.year, tt.month, tt.day)
			require.NoError(t, err)

			resp, err := handler.Handle(t.Context(), q)

			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, resp.Level)
			if tt.wantLevel == queries.ArchiveOrders {
				assert.Equal(t, tt.wantIDs, storeViewIDs(resp.Orders))
				return
			}
			assert.Equal(t, tt.wantKeys, resp.Keys)
		})
	}
}

func TestNewGetStoreArchiveQuery_Validation(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day string
		wantErr          error
	}{
		{name: "month without year", month: "05", wantErr: errs.ErrValueIsRequired},
		{name: "day without month", year: "2024", day: "01", wantErr: errs.ErrValueIsRequired},
		{name: "month out of range", year: "2024", month: "13", wantErr: errs.ErrValueIsOutOfRange},
		{name: "day not a number", year: "2024", month: "05", day: "first", wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := queries.NewGetStoreArchiveQuery("s1", tt.year, tt.month, tt.day)

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetTransitionRuns(t *testing.T) {
	started := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	entry, err := journal.NewEntry(kernel.NewUUID(), "accept", "o1", "9876543210", 5, started)
	require.NoError(t, err)

	repo := &MockJournalRepository{}
	repo.On("ListByOrder", mock.Anything, "o1").Return([]*journal.Entry{entry}, nil).Once()

	q, err := queries.NewGetTransitionRunsQuery("o1")
	require.NoError(t, err)

	runs, err := queries.NewGetTransitionRunsQueryHandler(repo).Handle(t.Context(), q)

	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "accept", runs[0].Transition())
	repo.AssertExpectations(t)
}

func TestGetTransitionRuns_RepositoryError(t *testing.T) {
	boom := errors.New("db down")
	repo := &MockJournalRepository{}
	repo.On("ListByOrder", mock.Anything, "o1").Return(nil, boom).Once()

	q, err := queries.NewGetTransitionRunsQuery("o1")
	require.NoError(t, err)

	_, err = queries.NewGetTransitionRunsQueryHandler(repo).Handle(t.Context(), q)

	require.ErrorIs(t, err, boom)
}
