package notification

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-rental-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-rental-booking/internal/domain/reservation"
	"github.com/sanosuguru/go-rental-booking/internal/pkg/logger"
)

// BookingNotice は予約確定時に顧客へ送る通知内容
type BookingNotice struct {
	ReservationID string          `json:"reservation_id"`
	ItemID        string          `json:"item_id"`
	ItemName      string          `json:"item_name"`
	Duration      string          `json:"duration"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
}

// NewBookingNotice は予約と品目から通知内容を組み立てる。
// 料金表にない期間ラベルの場合 Price はゼロになる。
func NewBookingNotice(r reservation.Reservation, item catalog.Item) BookingNotice {
	price, _ := item.PriceFor(r.Duration)
	n := BookingNotice{
		ReservationID: r.ID,
		ItemID:        r.ItemID,
		ItemName:      item.Name,
		Duration:      r.Duration,
		Price:         price,
		Currency:      catalog.Currency,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
	}
	if r.Customer != nil {
		n.CustomerName = r.Customer.Name
		n.CustomerEmail = r.Customer.Email
	}
	return n
}

// LogNotifier は通知をログに出力するだけの通知先
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier は新しいLogNotifierを作成する
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.Named("notification")}
}

// Notify は通知内容をログに出力する
func (n *LogNotifier) Notify(_ context.Context, notice BookingNotice) error {
	n.log.Info("予約確認通知",
		zap.String("reservation_id", notice.ReservationID),
		zap.String("item_id", notice.ItemID),
		zap.String("duration", notice.Duration),
		zap.String("price", notice.Price.StringFixed(2)),
		zap.String("currency", notice.Currency),
		zap.Bool("has_email", notice.CustomerEmail != ""),
	)
	return nil
}
