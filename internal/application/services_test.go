package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-rental-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-rental-booking/internal/inventory"
	"github.com/sanosuguru/go-rental-booking/internal/notification"
	"github.com/sanosuguru/go-rental-booking/internal/pkg/metrics"
)

// === Mock implementations ===

// MockNotifier implements BookingNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, notice notification.BookingNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

// testClock はテスト用の手動時計
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var testItems = []catalog.Item{
	{
		ID: "fat-bike", Name: "Fat Bike", Category: catalog.CategoryBicycle, TotalStock: 4,
		Options: []catalog.RentalOption{
			{Duration: "1h", Price: decimal.RequireFromString("10")},
			{Duration: "4h", Price: decimal.RequireFromString("25")},
			{Duration: "Todo el día", Price: decimal.RequireFromString("40")},
			{Duration: "30 min", Price: decimal.RequireFromString("6")},
		},
	},
	{
		ID: "bmw-gs", Name: "BMW R 1250 GS", Category: catalog.CategoryMotorcycle, TotalStock: 1,
		Options: []catalog.RentalOption{{Duration: "1 Día", Price: decimal.RequireFromString("70")}},
	},
	{
		ID: "sold-out", Name: "Sold Out", Category: catalog.CategoryCar, TotalStock: 0,
		Options: []catalog.RentalOption{{Duration: "1 Día", Price: decimal.RequireFromString("45")}},
	},
}

type testEnv struct {
	tracker      *inventory.Tracker
	clock        *testClock
	metrics      *metrics.Metrics
	rentals      *RentalService
	reservations *ReservationService
}

func setupTestEnv(t *testing.T, notifier BookingNotifier) *testEnv {
	t.Helper()
	clock := &testClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	tracker, err := inventory.New(testItems, inventory.WithClock(clock.Now))
	require.NoError(t, err)
	t.Cleanup(tracker.Close)

	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	return &testEnv{
		tracker:      tracker,
		clock:        clock,
		metrics:      m,
		rentals:      NewRentalService(tracker),
		reservations: NewReservationService(tracker, notifier, m),
	}
}
