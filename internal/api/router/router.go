package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanosuguru/go-rental-booking/internal/api"
	"github.com/sanosuguru/go-rental-booking/internal/api/handler"
	"github.com/sanosuguru/go-rental-booking/internal/api/middleware"
	"github.com/sanosuguru/go-rental-booking/internal/config"
	"github.com/sanosuguru/go-rental-booking/internal/pkg/metrics"
)

// Handlers はルーティング対象のハンドラー群
type Handlers struct {
	Health      *handler.HealthHandler
	Rental      *handler.RentalHandler
	Reservation *handler.ReservationHandler
	Stream      *handler.StreamHandler
}

// Options は /metrics の公開設定
type Options struct {
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	MetricsAuth config.MetricsConfig
}

// New はミドルウェアとルートを設定したEchoを返す
func New(h Handlers, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler

	middleware.SetupMiddleware(e)
	if opts.Metrics != nil {
		e.Use(middleware.PrometheusMiddleware(opts.Metrics))
	}

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
		middleware.MetricsBasicAuth(opts.MetricsAuth))

	e.GET("/health", h.Health.Check)

	v1 := e.Group("/api/v1")
	v1.GET("/health", h.Health.Check)

	v1.GET("/rentals", h.Rental.List)
	v1.GET("/rentals/:id", h.Rental.GetByID)
	v1.GET("/rentals/:id/availability", h.Rental.Availability)
	v1.GET("/rentals/:id/reservations", h.Reservation.ListByItem)
	v1.GET("/availability/stream", h.Stream.Availability)

	v1.POST("/reservations", h.Reservation.Create)
	v1.GET("/reservations/:id", h.Reservation.GetByID)
	v1.DELETE("/reservations/:id", h.Reservation.Cancel)

	return e
}
