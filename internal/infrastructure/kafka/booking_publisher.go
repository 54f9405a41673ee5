package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-rental-booking/internal/notification"
	"github.com/sanosuguru/go-rental-booking/internal/pkg/logger"
)

// EventTypeReservationCreated は予約確定イベントの種別
const EventTypeReservationCreated = "reservation.created"

var (
	ErrPublisherBusy   = errors.New("送信キューが満杯です")
	ErrPublisherClosed = errors.New("パブリッシャーは停止済みです")
)

// Envelope は下流のメーラーが受け取るイベント形式
type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// MessageWriter はkafka.Writerのうち利用するメソッド
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// BookingPublisher は予約通知をKafkaへ非同期に送る。
// Notify はキューに積むだけで、書き込みはStartしたゴルーチンが行う。
type BookingPublisher struct {
	w     MessageWriter
	inbox chan kafka.Message
	log   *zap.Logger

	mu      sync.RWMutex
	closed  bool
	started bool
	doneCh  chan struct{}
}

// NewBookingPublisher はブローカーとトピックを指定してパブリッシャーを作成する
func NewBookingPublisher(brokers []string, topic string, buf int) *BookingPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
	return NewBookingPublisherWithWriter(w, buf)
}

// NewBookingPublisherWithWriter は任意のライターでパブリッシャーを作成する
func NewBookingPublisherWithWriter(w MessageWriter, buf int) *BookingPublisher {
	if buf <= 0 {
		buf = 1
	}
	return &BookingPublisher{
		w:      w,
		inbox:  make(chan kafka.Message, buf),
		log:    logger.Named("kafka"),
		doneCh: make(chan struct{}),
	}
}

// Start は送信ループを開始する。ctx がキャンセルされると残りを送ってから終了する
func (p *BookingPublisher) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started || p.closed {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		defer close(p.doneCh)
		for {
			select {
			case <-ctx.Done():
				p.shutdown()
				for m := range p.inbox {
					p.write(m)
				}
				return
			case m, ok := <-p.inbox:
				if !ok {
					return
				}
				p.write(m)
			}
		}
	}()
}

// Notify は予約通知をキューに積む。キューが満杯なら ErrPublisherBusy を返す
func (p *BookingPublisher) Notify(_ context.Context, notice notification.BookingNotice) error {
	msg, err := newMessage(notice, time.Now())
	if err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	select {
	case p.inbox <- msg:
		return nil
	default:
		return ErrPublisherBusy
	}
}

// Close はキューを閉じ、残りのメッセージを送ってからライターを閉じる
func (p *BookingPublisher) Close() error {
	p.shutdown()

	p.mu.RLock()
	started := p.started
	p.mu.RUnlock()

	if started {
		<-p.doneCh
	} else {
		for m := range p.inbox {
			p.write(m)
		}
	}
	return p.w.Close()
}

// shutdown は新規受付を止めてキューを閉じる
func (p *BookingPublisher) shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.inbox)
}

func (p *BookingPublisher) write(m kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.w.WriteMessages(ctx, m); err != nil {
		p.log.Error("予約イベントの送信失敗",
			zap.String("key", string(m.Key)),
			zap.Error(err),
		)
		return
	}
	p.log.Debug("予約イベント送信", zap.String("key", string(m.Key)))
}

// newMessage は通知をエンベロープに包み、品目IDをキーにしたメッセージを作る
func newMessage(notice notification.BookingNotice, now time.Time) (kafka.Message, error) {
	payload, err := json.Marshal(notice)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("通知のエンコードに失敗: %w", err)
	}
	env := Envelope{
		EventID:    uuid.NewString(),
		EventType:  EventTypeReservationCreated,
		OccurredAt: now.UTC(),
		Payload:    payload,
	}
	value, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("エンベロープのエンコードに失敗: %w", err)
	}
	return kafka.Message{
		Key:   []byte(notice.ItemID),
		Value: value,
		Time:  now,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypeReservationCreated)},
		},
	}, nil
}
