package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-rental-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-rental-booking/internal/domain/reservation"
	"github.com/sanosuguru/go-rental-booking/internal/inventory"
	"github.com/sanosuguru/go-rental-booking/internal/notification"
	"github.com/sanosuguru/go-rental-booking/internal/pkg/logger"
	"github.com/sanosuguru/go-rental-booking/internal/pkg/metrics"
)

type ReservationService struct {
	inventory Inventory
	notifier  BookingNotifier
	metrics   *metrics.Metrics
}

func NewReservationService(inv Inventory, n BookingNotifier, m *metrics.Metrics) *ReservationService {
	return &ReservationService{inventory: inv, notifier: n, metrics: m}
}

type CreateReservationInput struct {
	ItemID        string
	Duration      string
	CustomerName  string
	CustomerEmail string
}

func (in CreateReservationInput) customer() *reservation.CustomerInfo {
	name := strings.TrimSpace(in.CustomerName)
	email := strings.TrimSpace(in.CustomerEmail)
	if name == "" && email == "" {
		return nil
	}
	return &reservation.CustomerInfo{Name: name, Email: email}
}

// CreateReservation は在庫を1台仮押さえする。
// 在庫切れは inventory.ErrOutOfStock、未知の品目は catalog.ErrItemNotFound、
// 品目の料金表にない期間は reservation.ErrInvalidDuration を返す。
func (s *ReservationService) CreateReservation(ctx context.Context, input CreateReservationInput) (*reservation.Reservation, error) {
	if err := reservation.ValidateRequest(input.ItemID, input.Duration); err != nil {
		return nil, err
	}

	item, ok := s.inventory.Item(input.ItemID)
	if !ok {
		s.metrics.ObserveReservation(metrics.ResultNotFound)
		return nil, catalog.ErrItemNotFound
	}
	if _, ok := item.PriceFor(input.Duration); !ok {
		s.metrics.ObserveReservation(metrics.ResultInvalid)
		return nil, fmt.Errorf("%w: %q", reservation.ErrInvalidDuration, input.Duration)
	}

	res, err := s.inventory.Reserve(input.ItemID, input.Duration, input.customer())
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrOutOfStock):
			s.metrics.ObserveReservation(metrics.ResultOutOfStock)
		case errors.Is(err, catalog.ErrItemNotFound):
			s.metrics.ObserveReservation(metrics.ResultNotFound)
		default:
			s.metrics.ObserveReservation(metrics.ResultError)
		}
		return nil, err
	}
	s.metrics.ObserveReservation(metrics.ResultSuccess)

	s.notify(ctx, res, item)
	return &res, nil
}

// notify は予約確認を送る。失敗はログとメトリクスに残すだけ
func (s *ReservationService) notify(ctx context.Context, res reservation.Reservation, item catalog.Item) {
	if s.notifier == nil {
		return
	}

	err := s.notifier.Notify(ctx, notification.NewBookingNotice(res, item))
	s.metrics.ObserveNotification(err)
	if err != nil {
		logger.Warn("予約確認通知の送信失敗",
			zap.String("reservation_id", res.ID),
			zap.Error(err),
		)
	}
}

func (s *ReservationService) GetReservation(ctx context.Context, id string) (*reservation.Reservation, error) {
	res, ok := s.inventory.FindReservation(id)
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	return &res, nil
}

// ListReservations は品目の有効な予約を作成順に返す
func (s *ReservationService) ListReservations(ctx context.Context, itemID string) ([]reservation.Reservation, error) {
	if _, ok := s.inventory.Item(itemID); !ok {
		return nil, catalog.ErrItemNotFound
	}
	return s.inventory.GetReservations(itemID), nil
}

// CancelReservation は予約を取り消す。見つからなければ何もせず false を返す
func (s *ReservationService) CancelReservation(ctx context.Context, id string) bool {
	cancelled := s.inventory.CancelReservation(id)
	if cancelled {
		s.metrics.ObserveCancellation()
	}
	return cancelled
}
