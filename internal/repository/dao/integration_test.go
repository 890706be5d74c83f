//go:build integration

package dao_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapdraw/raffle-api/internal/repository/dao"
	"github.com/snapdraw/raffle-api/internal/testhelper"
)

func TestEntryDAO_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in -short mode")
	}

	db := testhelper.SetupPostgres(t)
	ctx := context.Background()

	userDAO := dao.NewUserDAO(db)
	entryDAO := dao.NewEntryDAO(db)

	user, err := userDAO.Insert(ctx, dao.User{
		Name:    "Ravi Kumar",
		Email:   "ravi@example.com",
		Phone:   "9876543210",
		Address: "12 MG Road, Bangalore",
		State:   "Karnataka",
		Pincode: "560001",
	})
	require.NoError(t, err)

	t.Run("duplicate token maps to ErrTokenExists", func(t *testing.T) {
		_, err := entryDAO.Insert(ctx, dao.Entry{
			UserID: user.ID,
			Token:  "SD-000001-DUPE",
			Amount: 10000,
			Status: "PENDING",
		})
		require.NoError(t, err)

		_, err = entryDAO.Insert(ctx, dao.Entry{
			UserID: user.ID,
			Token:  "SD-000001-DUPE",
			Amount: 10000,
			Status: "PENDING",
		})
		assert.ErrorIs(t, err, dao.ErrTokenExists)
	})

	t.Run("status update by order id is batched and idempotent", func(t *testing.T) {
		for i := 1; i <= 2; i++ {
			_, err := entryDAO.Insert(ctx, dao.Entry{
				UserID:          user.ID,
				Token:           "SD-000002-BAT" + string(rune('0'+i)),
				Amount:          10000,
				Status:          "PENDING",
				RazorpayOrderID: "order_batch",
				EntryNumber:     i,
				TotalEntries:    2,
			})
			require.NoError(t, err)
		}

		affected, err := entryDAO.UpdateStatusByOrderID(ctx, "order_batch", "CONFIRMED", "pay_1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), affected)

		affected, err = entryDAO.UpdateStatusByOrderID(ctx, "order_batch", "CONFIRMED", "pay_1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), affected)

		found, err := entryDAO.FindByOrderID(ctx, "order_batch")
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, 1, found[0].EntryNumber)
		assert.Equal(t, "CONFIRMED", found[0].Status)
		assert.Equal(t, "ravi@example.com", found[0].User.Email)
	})

	t.Run("stale pending sweep sees only old rows", func(t *testing.T) {
		inserted, err := entryDAO.Insert(ctx, dao.Entry{
			UserID: user.ID,
			Token:  "SD-000003-STAL",
			Amount: 10000,
			Status: "PENDING",
		})
		require.NoError(t, err)

		stale, err := entryDAO.FindByStatusOlderThan(ctx, "PENDING", time.Now().Add(-time.Hour))
		require.NoError(t, err)
		for _, entry := range stale {
			assert.NotEqual(t, inserted.ID, entry.ID)
		}

		stale, err = entryDAO.FindByStatusOlderThan(ctx, "PENDING", time.Now().Add(time.Hour))
		require.NoError(t, err)

		var found bool
		for _, entry := range stale {
			if entry.ID == inserted.ID {
				found = true
			}
		}
		assert.True(t, found)
	})
}

func TestWinnerDAO_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in -short mode")
	}

	db := testhelper.SetupPostgres(t)
	ctx := context.Background()

	userDAO := dao.NewUserDAO(db)
	entryDAO := dao.NewEntryDAO(db)
	winnerDAO := dao.NewWinnerDAO(db)

	user, err := userDAO.Insert(ctx, dao.User{
		Name:    "Priya Singh",
		Email:   "priya@example.com",
		Phone:   "9123456780",
		Address: "4 Park Street, Kolkata",
		State:   "West Bengal",
		Pincode: "700016",
	})
	require.NoError(t, err)

	entry, err := entryDAO.Insert(ctx, dao.Entry{
		UserID: user.ID,
		Token:  "SD-000004-WINR",
		Amount: 10000,
		Status: "CONFIRMED",
	})
	require.NoError(t, err)

	t.Run("second insert loses at the database", func(t *testing.T) {
		_, err := winnerDAO.Insert(ctx, dao.Winner{
			EntryID:     entry.ID,
			AnnouncedAt: time.Now().UTC(),
		})
		require.NoError(t, err)

		_, err = winnerDAO.Insert(ctx, dao.Winner{
			EntryID:     entry.ID,
			AnnouncedAt: time.Now().UTC(),
		})
		assert.ErrorIs(t, err, dao.ErrWinnerExists)
	})

	t.Run("current winner preloads entry and user", func(t *testing.T) {
		winner, err := winnerDAO.FindCurrent(ctx)
		require.NoError(t, err)

		assert.Equal(t, "SD-000004-WINR", winner.Entry.Token)
		assert.Equal(t, "Priya Singh", winner.Entry.User.Name)
	})

	t.Run("clear allows a fresh draw", func(t *testing.T) {
		require.NoError(t, winnerDAO.DeleteAll(ctx))

		_, err := winnerDAO.FindCurrent(ctx)
		assert.ErrorIs(t, err, dao.ErrWinnerNotFound)

		_, err = winnerDAO.Insert(ctx, dao.Winner{
			EntryID:     entry.ID,
			AnnouncedAt: time.Now().UTC(),
		})
		assert.NoError(t, err)
	})
}

func TestUserDAO_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in -short mode")
	}

	db := testhelper.SetupPostgres(t)
	ctx := context.Background()

	userDAO := dao.NewUserDAO(db)

	first, err := userDAO.Insert(ctx, dao.User{
		Name:    "Amit Patel",
		Email:   "amit@example.com",
		Phone:   "9988776655",
		Address: "7 Ring Road, Ahmedabad",
		State:   "Gujarat",
		Pincode: "380001",
	})
	require.NoError(t, err)

	_, err = userDAO.Insert(ctx, dao.User{
		Name:    "Someone Else",
		Email:   "amit@example.com",
		Phone:   "9000000001",
		Address: "Elsewhere Street Number 9",
		State:   "Gujarat",
		Pincode: "380002",
	})
	assert.ErrorIs(t, err, dao.ErrUserEmailExists)

	found, err := userDAO.FindByEmailOrPhone(ctx, "amit@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	updated, err := userDAO.UpdateContact(ctx, first.ID, "Amit B Patel", "8 Ring Road, Ahmedabad", "Gujarat", "380009")
	require.NoError(t, err)
	assert.Equal(t, "Amit B Patel", updated.Name)
	assert.Equal(t, "amit@example.com", updated.Email)
}
