package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-rental-booking/internal/inventory"
	"github.com/sanosuguru/go-rental-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-rental-booking/internal/pkg/metrics"
)

// DefaultRefreshInterval は在庫リフレッシュのデフォルト間隔
const DefaultRefreshInterval = 60 * time.Second

// StockUpdater は期限切れ予約を回収して在庫を再計算するインターフェース
type StockUpdater interface {
	UpdateStock() int
	Snapshot() []inventory.Availability
}

// AvailabilityPublisher はリフレッシュ後の在庫スナップショットを受け取る
type AvailabilityPublisher interface {
	PublishAvailability(ctx context.Context, snapshot []inventory.Availability) error
}

// StockRefresher は一定間隔で在庫をリフレッシュするワーカー
type StockRefresher struct {
	stock      StockUpdater
	publishers []AvailabilityPublisher
	metrics    *metrics.Metrics
	interval   time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}
	stopOnce   sync.Once
	startOnce  sync.Once
}

// NewStockRefresher は新しいリフレッシャーを作成。interval が0以下ならデフォルト値
func NewStockRefresher(
	stock StockUpdater,
	interval time.Duration,
	m *metrics.Metrics,
	publishers ...AvailabilityPublisher,
) *StockRefresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &StockRefresher{
		stock:      stock,
		publishers: publishers,
		metrics:    m,
		interval:   interval,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start はリフレッシャーを開始する。最初のリフレッシュを即座に行い、以降 interval ごとに繰り返す。
// Stop かコンテキストキャンセルまでブロックする。
func (r *StockRefresher) Start(ctx context.Context) {
	started := false
	r.startOnce.Do(func() { started = true })
	if !started {
		return
	}
	defer close(r.doneCh)

	logger.Info("在庫リフレッシャー開始", zap.Duration("interval", r.interval))

	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("在庫リフレッシャー停止（コンテキストキャンセル）")
			return
		case <-r.stopCh:
			logger.Info("在庫リフレッシャー停止（シグナル受信）")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// Stop はリフレッシャーを停止し、ループの終了を待つ。複数回呼んでもよい
func (r *StockRefresher) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })

	// 一度も開始していなければ待つ相手がいない
	notStarted := false
	r.startOnce.Do(func() {
		notStarted = true
		close(r.doneCh)
	})
	if notStarted {
		return
	}
	<-r.doneCh
}

// refresh は1回分のリフレッシュを行う
func (r *StockRefresher) refresh(ctx context.Context) {
	log := logger.Get()
	start := time.Now()

	expired := r.stock.UpdateStock()
	snapshot := r.stock.Snapshot()

	r.metrics.ObserveRefresh(expired, time.Since(start))
	for _, a := range snapshot {
		r.metrics.SetAvailableStock(a.ItemID, a.AvailableStock)
	}

	if expired > 0 {
		log.Info("期限切れ予約を回収", zap.Int("count", expired))
	} else {
		log.Debug("期限切れ予約なし")
	}

	for _, p := range r.publishers {
		if err := p.PublishAvailability(ctx, snapshot); err != nil {
			log.Warn("在庫スナップショットの配信失敗", zap.Error(err))
		}
	}
}
