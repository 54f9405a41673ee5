package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

	t.Run("顧客情報あり", func(t *testing.T) {
		customer := &CustomerInfo{Name: "Ana García", Email: "ana@example.com"}
		r := New("res-1", "city-bike", "30 min", customer, now)

		assert.Equal(t, "res-1", r.ID)
		assert.Equal(t, "city-bike", r.ItemID)
		assert.Equal(t, now, r.StartTime)
		assert.Equal(t, 30*time.Minute, r.EndTime.Sub(r.StartTime))
		assert.Equal(t, "30 min", r.Duration)
		require.NotNil(t, r.Customer)
		assert.Equal(t, "Ana García", r.Customer.Name)

		// 呼び出し元の値を書き換えても影響しない
		customer.Name = "changed"
		assert.Equal(t, "Ana García", r.Customer.Name)
	})

	t.Run("顧客情報なし", func(t *testing.T) {
		r := New("res-2", "fat-bike", "1h", nil, now)
		assert.Nil(t, r.Customer)
		assert.Equal(t, time.Hour, r.EndTime.Sub(r.StartTime))
	})
}

func TestNew_EndsAfterStartForAnyLabel(t *testing.T) {
	now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	for _, label := range []string{"9999999999999 días", "99999999999 min", "100000 días", "1h"} {
		t.Run(label, func(t *testing.T) {
			r := New("id", "fat-bike", label, nil, now)
			assert.True(t, r.EndTime.After(r.StartTime))
			assert.LessOrEqual(t, r.EndTime.Sub(r.StartTime), time.Duration(MaxDurationMinutes)*time.Minute)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name     string
		itemID   string
		duration string
		wantErr  error
	}{
		{"正常", "city-bike", "1h", nil},
		{"品目ID未指定", "", "1h", ErrItemIDRequired},
		{"期間未指定", "city-bike", "", ErrDurationRequired},
		{"空白だけの期間", "city-bike", "  ", ErrDurationRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.itemID, tt.duration)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestReservation_IsActiveAt(t *testing.T) {
	now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	r := New("res-1", "city-bike", "1h", nil, now)

	assert.True(t, r.IsActiveAt(now))
	assert.True(t, r.IsActiveAt(now.Add(59*time.Minute)))
	// 終了時刻ちょうどは失効
	assert.False(t, r.IsActiveAt(r.EndTime))
	assert.True(t, r.IsExpiredAt(r.EndTime))
	assert.True(t, r.IsExpiredAt(now.Add(2*time.Hour)))
}
