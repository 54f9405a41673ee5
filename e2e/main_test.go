package e2e

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-rental-booking/internal/api/handler"
	"github.com/sanosuguru/go-rental-booking/internal/api/router"
	"github.com/sanosuguru/go-rental-booking/internal/application"
	"github.com/sanosuguru/go-rental-booking/internal/config"
	"github.com/sanosuguru/go-rental-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-rental-booking/internal/inventory"
	"github.com/sanosuguru/go-rental-booking/internal/pkg/metrics"
	"github.com/sanosuguru/go-rental-booking/internal/worker"
)

// Clock はE2Eテスト用の手動時計
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TestServer はE2Eテスト用のサーバー。本番と同じ配線をプロセス内で組み立てる
type TestServer struct {
	Echo      *echo.Echo
	Tracker   *inventory.Tracker
	Hub       *inventory.Hub
	Clock     *Clock
	Refresher *worker.StockRefresher
	Registry  *prometheus.Registry
}

// NewTestServer はテスト用サーバーを作成
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	clock := &Clock{now: time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)}
	tracker, err := inventory.New(catalog.Default(), inventory.WithClock(clock.Now))
	require.NoError(t, err)
	hub := inventory.NewHub()

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	rentalService := application.NewRentalService(tracker)
	reservationService := application.NewReservationService(tracker, nil, m)

	e := router.New(router.Handlers{
		Health:      handler.NewHealthHandler(),
		Rental:      handler.NewRentalHandler(rentalService),
		Reservation: handler.NewReservationHandler(reservationService),
		Stream:      handler.NewStreamHandler(inventory.NewFeed(tracker, hub)),
	}, router.Options{Metrics: m, Gatherer: reg, MetricsAuth: config.MetricsConfig{}})

	s := &TestServer{
		Echo:      e,
		Tracker:   tracker,
		Hub:       hub,
		Clock:     clock,
		Refresher: worker.NewStockRefresher(tracker, time.Hour, m, hub),
		Registry:  reg,
	}
	t.Cleanup(func() {
		s.Refresher.Stop()
		hub.Close()
		tracker.Close()
	})
	return s
}

// Request はHTTPリクエストを実行
func (s *TestServer) Request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

// decode はレスポンスボディをデコードする
func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
