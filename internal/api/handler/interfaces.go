package handler

import (
	"context"

	"github.com/sanosuguru/go-rental-booking/internal/application"
	"github.com/sanosuguru/go-rental-booking/internal/domain/reservation"
	"github.com/sanosuguru/go-rental-booking/internal/inventory"
)

// RentalServiceInterface はレンタル品目サービスのインターフェース
type RentalServiceInterface interface {
	ListRentals(ctx context.Context, category string) ([]application.Rental, error)
	GetRental(ctx context.Context, id string) (*application.Rental, error)
}

// ReservationServiceInterface は予約サービスのインターフェース
type ReservationServiceInterface interface {
	CreateReservation(ctx context.Context, input application.CreateReservationInput) (*reservation.Reservation, error)
	GetReservation(ctx context.Context, id string) (*reservation.Reservation, error)
	ListReservations(ctx context.Context, itemID string) ([]reservation.Reservation, error)
	CancelReservation(ctx context.Context, id string) bool
}

// AvailabilityFeed は在庫スナップショットの取得と購読を提供する
type AvailabilityFeed interface {
	Snapshot() []inventory.Availability
	Subscribe() (<-chan []inventory.Availability, func())
}
