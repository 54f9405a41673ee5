package inventory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-rental-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-rental-booking/internal/domain/reservation"
	"github.com/sanosuguru/go-rental-booking/internal/pkg/logger"
)

// Availability は品目ごとの在庫スナップショット
type Availability struct {
	ItemID         string `json:"item_id"`
	Name           string `json:"name"`
	TotalStock     int    `json:"total_stock"`
	AvailableStock int    `json:"available_stock"`
}

// itemState は品目1件分の可変状態。mu が available と reservations を保護する
type itemState struct {
	item catalog.Item

	mu           sync.Mutex
	available    int
	reservations []reservation.Reservation
}

// Tracker はプロセス内の在庫・予約ストア。
// items マップは New 以降変更しないため、品目ごとのロックだけで整合性を保つ。
type Tracker struct {
	order []string
	items map[string]*itemState
	now   func() time.Time
	newID func() string

	closeOnce sync.Once
}

// Option は Tracker の設定を変更する
type Option func(*Tracker)

// WithClock は現在時刻の取得方法を差し替える
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDGenerator は予約IDの生成方法を差し替える
func WithIDGenerator(gen func() string) Option {
	return func(t *Tracker) { t.newID = gen }
}

// New はカタログから Tracker を初期化する
func New(items []catalog.Item, opts ...Option) (*Tracker, error) {
	if err := catalog.Validate(items); err != nil {
		return nil, err
	}
	t := &Tracker{
		order: make([]string, 0, len(items)),
		items: make(map[string]*itemState, len(items)),
		now:   time.Now,
		newID: newReservationID,
	}
	for _, opt := range opts {
		opt(t)
	}
	for _, it := range items {
		t.order = append(t.order, it.ID)
		t.items[it.ID] = &itemState{item: it, available: it.TotalStock}
	}
	logger.Info("在庫トラッカー初期化", zap.Int("items", len(items)))
	return t, nil
}

// newReservationID は UUIDv7 を返す。ミリ秒時刻 + 乱数 + 単調増加シーケンスで同一ミリ秒でも重複しない
func newReservationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Items はカタログ順の品目定義を返す
func (t *Tracker) Items() []catalog.Item {
	out := make([]catalog.Item, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.items[id].item)
	}
	return out
}

// Item は品目定義を返す
func (t *Tracker) Item(itemID string) (catalog.Item, bool) {
	st, ok := t.items[itemID]
	if !ok {
		return catalog.Item{}, false
	}
	return st.item, true
}

// GetAvailableStock は現在の空き在庫数を返す。未知のIDは0。
// 期限切れの回収は行わない（UpdateStock の役割）。
func (t *Tracker) GetAvailableStock(itemID string) int {
	st, ok := t.items[itemID]
	if !ok {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.available
}

// MakeReservation は在庫を1台仮押さえし、予約IDを返す。
// 在庫判定から追加までを品目ロック内で行うため、同時呼び出しでも在庫が負にならない。
func (t *Tracker) MakeReservation(itemID, duration string, customer *reservation.CustomerInfo) (string, error) {
	r, err := t.Reserve(itemID, duration, customer)
	if err != nil {
		return "", err
	}
	return r.ID, nil
}

// Reserve は MakeReservation と同じ処理で、作成した予約そのものを返す。
// 同じロックの中で作成するので、直後の取消や回収とは競合しない。
func (t *Tracker) Reserve(itemID, duration string, customer *reservation.CustomerInfo) (reservation.Reservation, error) {
	st, ok := t.items[itemID]
	if !ok {
		return reservation.Reservation{}, ErrItemNotFound
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.available <= 0 {
		return reservation.Reservation{}, ErrOutOfStock
	}

	r := reservation.New(t.newID(), itemID, duration, customer, t.now())
	st.reservations = append(st.reservations, r)
	st.available--

	logger.Debug("予約作成",
		zap.String("reservation_id", r.ID),
		zap.String("item_id", itemID),
		zap.String("duration", duration),
		zap.Time("end_time", r.EndTime),
		zap.Int("available", st.available),
	)
	return cloneReservation(r), nil
}

// CancelReservation は予約を取り消して在庫を戻す。
// 見つからない場合（失効済み・取消済み・不正ID）は何もしない。
func (t *Tracker) CancelReservation(reservationID string) bool {
	for _, id := range t.order {
		st := t.items[id]
		if st.remove(reservationID) {
			logger.Debug("予約取消", zap.String("reservation_id", reservationID), zap.String("item_id", id))
			return true
		}
	}
	return false
}

func (st *itemState) remove(reservationID string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	for i, r := range st.reservations {
		if r.ID != reservationID {
			continue
		}
		st.reservations = append(st.reservations[:i:i], st.reservations[i+1:]...)
		if st.available < st.item.TotalStock {
			st.available++
		}
		return true
	}
	return false
}

// GetReservations は品目の有効な予約を登録順で返す。未知のIDは空
func (t *Tracker) GetReservations(itemID string) []reservation.Reservation {
	st, ok := t.items[itemID]
	if !ok {
		return []reservation.Reservation{}
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return cloneReservations(st.reservations)
}

// FindReservation はIDから予約を探す
func (t *Tracker) FindReservation(reservationID string) (reservation.Reservation, bool) {
	for _, id := range t.order {
		st := t.items[id]
		st.mu.Lock()
		for _, r := range st.reservations {
			if r.ID == reservationID {
				st.mu.Unlock()
				return cloneReservation(r), true
			}
		}
		st.mu.Unlock()
	}
	return reservation.Reservation{}, false
}

// UpdateStock は期限切れ予約を全品目から取り除き、空き在庫を再計算する。
// 取り除いた件数を返す。
func (t *Tracker) UpdateStock() int {
	now := t.now()
	purged := 0
	for _, id := range t.order {
		purged += t.items[id].sweep(now)
	}
	if purged > 0 {
		logger.Debug("期限切れ予約を回収", zap.Int("count", purged))
	}
	return purged
}

func (st *itemState) sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	active := st.reservations[:0]
	for _, r := range st.reservations {
		if r.IsExpiredAt(now) {
			continue
		}
		active = append(active, r)
	}
	purged := len(st.reservations) - len(active)
	for i := len(active); i < len(st.reservations); i++ {
		st.reservations[i] = reservation.Reservation{}
	}
	st.reservations = active

	st.available = st.item.TotalStock - len(active)
	if st.available < 0 {
		st.available = 0
	}
	return purged
}

// Snapshot はカタログ順の在庫スナップショットを返す
func (t *Tracker) Snapshot() []Availability {
	out := make([]Availability, 0, len(t.order))
	for _, id := range t.order {
		st := t.items[id]
		st.mu.Lock()
		out = append(out, Availability{
			ItemID:         id,
			Name:           st.item.Name,
			TotalStock:     st.item.TotalStock,
			AvailableStock: st.available,
		})
		st.mu.Unlock()
	}
	return out
}

// Close はトラッカーを破棄する。保持中の予約はすべて破棄される
func (t *Tracker) Close() {
	t.closeOnce.Do(func() {
		for _, id := range t.order {
			st := t.items[id]
			st.mu.Lock()
			st.reservations = nil
			st.available = st.item.TotalStock
			st.mu.Unlock()
		}
		logger.Info("在庫トラッカー停止")
	})
}

func cloneReservations(rs []reservation.Reservation) []reservation.Reservation {
	out := make([]reservation.Reservation, len(rs))
	for i, r := range rs {
		out[i] = cloneReservation(r)
	}
	return out
}

func cloneReservation(r reservation.Reservation) reservation.Reservation {
	if r.Customer != nil {
		c := *r.Customer
		r.Customer = &c
	}
	return r
}
