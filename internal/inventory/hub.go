package inventory

import (
	"context"
	"sync"
)

// Hub は在庫スナップショットを購読者へ配信する
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan []Availability
	closed bool
}

// NewHub は新しい Hub を作成する
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan []Availability)}
}

// Subscribe は購読を開始する。戻り値の関数で購読を解除する。
// チャンネルには常に最新のスナップショットだけが残る。
func (h *Hub) Subscribe() (<-chan []Availability, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan []Availability, 1)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
}

// PublishAvailability は全購読者にスナップショットを送る。購読者を待たない
func (h *Hub) PublishAvailability(_ context.Context, snapshot []Availability) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
	return nil
}

// Subscribers は現在の購読者数を返す
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close は全購読を終了する
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

// Feed は現在のスナップショットと以降の更新をまとめて提供する
type Feed struct {
	*Hub
	tracker *Tracker
}

// NewFeed はトラッカーとHubから Feed を作成する
func NewFeed(t *Tracker, h *Hub) *Feed {
	return &Feed{Hub: h, tracker: t}
}

// Snapshot はトラッカーの現在の在庫を返す
func (f *Feed) Snapshot() []Availability {
	return f.tracker.Snapshot()
}
