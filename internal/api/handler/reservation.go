package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-rental-booking/internal/application"
	"github.com/sanosuguru/go-rental-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-rental-booking/internal/domain/reservation"
	"github.com/sanosuguru/go-rental-booking/internal/inventory"
)

type ReservationHandler struct {
	service ReservationServiceInterface
}

func NewReservationHandler(s ReservationServiceInterface) *ReservationHandler {
	return &ReservationHandler{service: s}
}

type CreateReservationRequest struct {
	ItemID        string `json:"item_id" validate:"required,max=64,item_slug" example:"fat-bike"`
	Duration      string `json:"duration" validate:"required,notblank,max=64" example:"4h"`
	CustomerName  string `json:"customer_name" validate:"max=100" example:"Ana García"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email" example:"ana@example.com"`
}

type ReservationResponse struct {
	ID            string    `json:"id" example:"01890a5d-ac96-774b-bcce-b302099a8057"`
	ItemID        string    `json:"item_id" example:"fat-bike"`
	Duration      string    `json:"duration" example:"4h"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	CustomerName  string    `json:"customer_name,omitempty" example:"Ana García"`
	CustomerEmail string    `json:"customer_email,omitempty" example:"ana@example.com"`
}

func toReservationResponse(r *reservation.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:        r.ID,
		ItemID:    r.ItemID,
		Duration:  r.Duration,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
	if r.Customer != nil {
		resp.CustomerName = r.Customer.Name
		resp.CustomerEmail = r.Customer.Email
	}
	return resp
}

// Create godoc
// @Summary 予約を作成
// @Description 品目を1台仮押さえします（期間終了で自動解放）
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body CreateReservationRequest true "予約情報"
// @Success 201 {object} ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "在庫なし"
// @Router /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := h.service.CreateReservation(c.Request().Context(), application.CreateReservationInput{
		ItemID:        req.ItemID,
		Duration:      req.Duration,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrOutOfStock):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, catalog.ErrItemNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, reservation.ErrItemIDRequired),
			errors.Is(err, reservation.ErrDurationRequired),
			errors.Is(err, reservation.ErrInvalidDuration):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, toReservationResponse(r))
}

// GetByID godoc
// @Summary 予約を取得
// @Description 指定IDの有効な予約を取得します
// @Tags reservations
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetByID(c echo.Context) error {
	r, err := h.service.GetReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, reservation.ErrReservationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// ListByItem godoc
// @Summary 品目の予約一覧
// @Description 品目の有効な予約を作成順に返します
// @Tags reservations
// @Produce json
// @Param id path string true "品目ID"
// @Success 200 {array} ReservationResponse
// @Failure 404 {object} map[string]string
// @Router /rentals/{id}/reservations [get]
func (h *ReservationHandler) ListByItem(c echo.Context) error {
	list, err := h.service.ListReservations(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]ReservationResponse, len(list))
	for i := range list {
		resp[i] = toReservationResponse(&list[i])
	}
	return c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary 予約をキャンセル
// @Description 予約を取り消して在庫を戻します。存在しない予約でも204を返します
// @Tags reservations
// @Param id path string true "予約ID"
// @Success 204
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	h.service.CancelReservation(c.Request().Context(), c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}
