package application

import (
	"context"

	"github.com/sanosuguru/go-rental-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-rental-booking/internal/domain/reservation"
	"github.com/sanosuguru/go-rental-booking/internal/notification"
)

// Inventory はサービスが利用する在庫トラッカーの操作
type Inventory interface {
	Items() []catalog.Item
	Item(itemID string) (catalog.Item, bool)
	GetAvailableStock(itemID string) int
	Reserve(itemID, duration string, customer *reservation.CustomerInfo) (reservation.Reservation, error)
	CancelReservation(reservationID string) bool
	GetReservations(itemID string) []reservation.Reservation
	FindReservation(reservationID string) (reservation.Reservation, bool)
}

// BookingNotifier は予約確定の通知先。失敗しても予約は取り消さない
type BookingNotifier interface {
	Notify(ctx context.Context, notice notification.BookingNotice) error
}
