package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 予約結果のラベル値
const (
	ResultSuccess    = "success"
	ResultOutOfStock = "out_of_stock"
	ResultNotFound   = "not_found"
	ResultInvalid    = "invalid_duration"
	ResultError      = "error"
)

// Metrics はアプリケーションのメトリクスを管理する。
// nil レシーバのメソッド呼び出しは何もしない。
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// 予約の総数（result: success, out_of_stock, not_found, error）
	ReservationsTotal *prometheus.CounterVec

	// 取消された予約数
	CancellationsTotal prometheus.Counter

	// 期限切れで回収された予約数
	ExpiredReservationsTotal prometheus.Counter

	// 在庫リフレッシュの所要時間
	StockRefreshDuration prometheus.Histogram

	// 品目ごとの空き在庫（item_id）
	AvailableStock *prometheus.GaugeVec

	// 予約通知の送信結果（status: sent, failed）
	BookingNotificationsTotal *prometheus.CounterVec
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ReservationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservations_total",
				Help: "Total number of reservation attempts by result",
			},
			[]string{"result"},
		),
		CancellationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "reservation_cancellations_total",
				Help: "Total number of reservations cancelled explicitly",
			},
		),
		ExpiredReservationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "expired_reservations_total",
				Help: "Total number of reservations reclaimed by the expiry sweep",
			},
		),
		StockRefreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stock_refresh_duration_seconds",
				Help:    "Time spent on a stock refresh cycle",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
		),
		AvailableStock: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "available_stock",
				Help: "Units currently free to reserve per rental item",
			},
			[]string{"item_id"},
		),
		BookingNotificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_notifications_total",
				Help: "Booking notifications handed to the notifier by status",
			},
			[]string{"status"},
		),
	}

	// レジストリに登録
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReservationsTotal,
		m.CancellationsTotal,
		m.ExpiredReservationsTotal,
		m.StockRefreshDuration,
		m.AvailableStock,
		m.BookingNotificationsTotal,
	)

	return m
}

// ObserveReservation は予約結果を記録する
func (m *Metrics) ObserveReservation(result string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(result).Inc()
}

// ObserveCancellation は取消を記録する
func (m *Metrics) ObserveCancellation() {
	if m == nil {
		return
	}
	m.CancellationsTotal.Inc()
}

// ObserveRefresh はリフレッシュ1回分の結果を記録する
func (m *Metrics) ObserveRefresh(expired int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ExpiredReservationsTotal.Add(float64(expired))
	m.StockRefreshDuration.Observe(elapsed.Seconds())
}

// SetAvailableStock は品目の空き在庫を記録する
func (m *Metrics) SetAvailableStock(itemID string, available int) {
	if m == nil {
		return
	}
	m.AvailableStock.WithLabelValues(itemID).Set(float64(available))
}

// ObserveNotification は通知結果を記録する
func (m *Metrics) ObserveNotification(err error) {
	if m == nil {
		return
	}
	status := "sent"
	if err != nil {
		status = "failed"
	}
	m.BookingNotificationsTotal.WithLabelValues(status).Inc()
}
