package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-rental-booking/internal/domain/catalog"
)

func TestRentalService_ListRentals(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	t.Run("カテゴリ指定なしで全件", func(t *testing.T) {
		rentals, err := env.rentals.ListRentals(ctx, "")
		require.NoError(t, err)
		require.Len(t, rentals, 3)
		assert.Equal(t, "fat-bike", rentals[0].ID)
		assert.Equal(t, 4, rentals[0].AvailableStock)
		assert.True(t, rentals[0].Bookable)
		assert.False(t, rentals[2].Bookable)
	})

	t.Run("カテゴリで絞り込み", func(t *testing.T) {
		rentals, err := env.rentals.ListRentals(ctx, "motorcycle")
		require.NoError(t, err)
		require.Len(t, rentals, 1)
		assert.Equal(t, "bmw-gs", rentals[0].ID)
	})

	t.Run("該当なしは空", func(t *testing.T) {
		rentals, err := env.rentals.ListRentals(ctx, "quad")
		require.NoError(t, err)
		assert.Empty(t, rentals)
	})

	t.Run("不正なカテゴリ", func(t *testing.T) {
		_, err := env.rentals.ListRentals(ctx, "boat")
		assert.ErrorIs(t, err, catalog.ErrInvalidCategory)
	})
}

func TestRentalService_GetRental(t *testing.T) {
	env := setupTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.tracker.MakeReservation("bmw-gs", "1 Día", nil)
	require.NoError(t, err)

	t.Run("予約済みで在庫なし", func(t *testing.T) {
		r, err := env.rentals.GetRental(ctx, "bmw-gs")
		require.NoError(t, err)
		assert.Equal(t, 0, r.AvailableStock)
		assert.False(t, r.Bookable)
		assert.Equal(t, 1, r.TotalStock)
	})

	t.Run("存在しない品目", func(t *testing.T) {
		_, err := env.rentals.GetRental(ctx, "unknown")
		assert.ErrorIs(t, err, catalog.ErrItemNotFound)
	})

	t.Run("空き在庫数", func(t *testing.T) {
		n, err := env.rentals.GetAvailableStock(ctx, "fat-bike")
		require.NoError(t, err)
		assert.Equal(t, 4, n)

		_, err = env.rentals.GetAvailableStock(ctx, "unknown")
		assert.ErrorIs(t, err, catalog.ErrItemNotFound)
	})
}
