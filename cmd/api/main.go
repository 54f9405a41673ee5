package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-rental-booking/internal/api/handler"
	"github.com/sanosuguru/go-rental-booking/internal/api/router"
	"github.com/sanosuguru/go-rental-booking/internal/application"
	"github.com/sanosuguru/go-rental-booking/internal/config"
	"github.com/sanosuguru/go-rental-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-rental-booking/internal/infrastructure/kafka"
	redisinfra "github.com/sanosuguru/go-rental-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-rental-booking/internal/inventory"
	"github.com/sanosuguru/go-rental-booking/internal/notification"
	"github.com/sanosuguru/go-rental-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-rental-booking/internal/pkg/metrics"
	"github.com/sanosuguru/go-rental-booking/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.Init(cfg.App.Env, cfg.App.LogLevel)
	defer func() { _ = logger.Sync() }()

	m := metrics.New()

	tracker, err := inventory.New(catalog.Default())
	if err != nil {
		log.Fatal("在庫トラッカーの初期化に失敗", zap.Error(err))
	}
	defer tracker.Close()

	hub := inventory.NewHub()
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	publishers := []worker.AvailabilityPublisher{hub}
	healthHandler := handler.NewHealthHandler()

	// Redis（任意）
	var (
		redisClient *goredis.Client
		cache       *redisinfra.AvailabilityCache
	)
	if cfg.Redis.Enabled {
		redisClient, err = redisinfra.Connect(ctx, &cfg.Redis, 3*time.Second)
		if err != nil {
			log.Warn("Redisに接続できないため在庫キャッシュなしで起動します", zap.Error(err))
		} else {
			cache = redisinfra.NewAvailabilityCache(redisClient, 2*cfg.Inventory.RefreshInterval)
			publishers = append(publishers, cache)
			healthHandler.WithCheck("redis", func(ctx context.Context) error {
				return redisinfra.Ping(ctx, redisClient)
			})
			if items := tracker.Items(); len(items) > 0 {
				healthHandler.WithCheck("availability_cache", cache.FreshnessCheck(items[0].ID))
			}
			log.Info("Redis接続完了", zap.String("addr", cfg.Redis.Addr()))
		}
	}

	// 予約通知（Kafka 未設定ならログ出力のみ）
	var notifier application.BookingNotifier = notification.NewLogNotifier()
	var publisher *kafka.BookingPublisher
	if cfg.Kafka.Enabled() {
		publisher = kafka.NewBookingPublisher(cfg.Kafka.Brokers, cfg.Kafka.BookingTopic, 256)
		publisher.Start(ctx)
		notifier = publisher
		log.Info("予約イベントをKafkaへ送信します",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.BookingTopic),
		)
	}

	rentalService := application.NewRentalService(tracker)
	reservationService := application.NewReservationService(tracker, notifier, m)

	e := router.New(router.Handlers{
		Health:      healthHandler,
		Rental:      handler.NewRentalHandler(rentalService),
		Reservation: handler.NewReservationHandler(reservationService),
		Stream:      handler.NewStreamHandler(inventory.NewFeed(tracker, hub)),
	}, router.Options{
		Metrics:     m,
		MetricsAuth: cfg.Metrics,
	})
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// 在庫リフレッシャー（起動直後に1回、以降は一定間隔）
	refresher := worker.NewStockRefresher(tracker, cfg.Inventory.RefreshInterval, m, publishers...)
	go refresher.Start(ctx)

	go func() {
		log.Info("サーバー起動", zap.String("port", cfg.Server.Port), zap.String("env", cfg.App.Env))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("サーバーをシャットダウンしています...")

	refresher.Stop()
	// SSE 接続を終わらせてから HTTP を止める
	hub.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("サーバーシャットダウンエラー", zap.Error(err))
	}

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error("Kafkaパブリッシャーの停止に失敗", zap.Error(err))
		}
	}
	if cache != nil {
		ids := make([]string, 0)
		for _, it := range tracker.Items() {
			ids = append(ids, it.ID)
		}
		if err := cache.Invalidate(shutdownCtx, ids...); err != nil {
			log.Warn("在庫キャッシュの削除に失敗", zap.Error(err))
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Redis切断に失敗", zap.Error(err))
		}
	}

	log.Info("サーバーが正常にシャットダウンしました")
}
