package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapdraw/raffle-api/internal/domain"
)

func TestDashboardService_Load(t *testing.T) {
	entries := newFakeEntryStore()
	winners := &fakeWinnerStore{}

	statuses := []domain.EntryStatus{
		domain.EntryConfirmed,
		domain.EntryConfirmed,
		domain.EntryConfirmed,
		domain.EntryPending,
		domain.EntryFailed,
	}
	for i, status := range statuses {
		_, err := entries.Create(context.Background(), domain.Entry{
			Token:  "SD-000001-D" + string(rune('A'+i)),
			Amount: 10000,
			Status: status,
		})
		require.NoError(t, err)
	}

	svc := NewDashboardService(entries, winners)

	dashboard, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(5), dashboard.Stats.TotalEntries)
	assert.Equal(t, int64(3), dashboard.Stats.ConfirmedEntries)
	assert.Equal(t, int64(1), dashboard.Stats.PendingEntries)
	assert.Equal(t, int64(1), dashboard.Stats.FailedEntries)
	assert.Equal(t, int64(30000), dashboard.Stats.TotalRevenue)
	assert.Equal(t, int64(3), dashboard.Stats.EligibleForDraw)

	assert.Nil(t, dashboard.CurrentWinner)
	assert.Len(t, dashboard.RecentEntries, 5)
	assert.Len(t, dashboard.EligibleEntries, 3)
}

func TestDashboardService_Load_WithWinner(t *testing.T) {
	entries := newFakeEntryStore()
	winners := &fakeWinnerStore{}

	created, err := entries.Create(context.Background(), domain.Entry{
		Token:  "SD-000001-WIN1",
		Amount: 10000,
		Status: domain.EntryConfirmed,
	})
	require.NoError(t, err)

	_, err = winners.Create(context.Background(), created.ID)
	require.NoError(t, err)

	svc := NewDashboardService(entries, winners)

	dashboard, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.NotNil(t, dashboard.CurrentWinner)
	assert.Equal(t, created.ID, dashboard.CurrentWinner.EntryID)
}
