package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/sanosuguru/go-rental-booking/internal/application"
	"github.com/sanosuguru/go-rental-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-rental-booking/internal/domain/reservation"
)

type RentalHandler struct {
	service RentalServiceInterface
}

func NewRentalHandler(s RentalServiceInterface) *RentalHandler {
	return &RentalHandler{service: s}
}

type RentalOptionResponse struct {
	Duration string          `json:"duration" example:"4h"`
	Minutes  int             `json:"minutes" example:"240"`
	Price    decimal.Decimal `json:"price" example:"25"`
}

type RentalResponse struct {
	ID             string                 `json:"id" example:"fat-bike"`
	Name           string                 `json:"name" example:"Fat Bike"`
	Category       string                 `json:"category" example:"bicycle"`
	TotalStock     int                    `json:"total_stock" example:"4"`
	AvailableStock int                    `json:"available_stock" example:"3"`
	Bookable       bool                   `json:"bookable" example:"true"`
	Currency       string                 `json:"currency" example:"EUR"`
	Options        []RentalOptionResponse `json:"options"`
}

type AvailabilityResponse struct {
	ItemID         string `json:"item_id" example:"fat-bike"`
	TotalStock     int    `json:"total_stock" example:"4"`
	AvailableStock int    `json:"available_stock" example:"3"`
	Bookable       bool   `json:"bookable" example:"true"`
}

func toRentalResponse(r application.Rental) RentalResponse {
	opts := make([]RentalOptionResponse, len(r.Options))
	for i, o := range r.Options {
		opts[i] = RentalOptionResponse{
			Duration: o.Duration,
			Minutes:  reservation.DurationMinutes(o.Duration),
			Price:    o.Price,
		}
	}
	return RentalResponse{
		ID:             r.ID,
		Name:           r.Name,
		Category:       string(r.Category),
		TotalStock:     r.TotalStock,
		AvailableStock: r.AvailableStock,
		Bookable:       r.Bookable,
		Currency:       catalog.Currency,
		Options:        opts,
	}
}

// List godoc
// @Summary レンタル品目一覧
// @Description 品目と現在の空き在庫を返します
// @Tags rentals
// @Produce json
// @Param category query string false "カテゴリ (bicycle, car, motorcycle, quad, scooter)"
// @Success 200 {array} RentalResponse
// @Failure 400 {object} map[string]string
// @Router /rentals [get]
func (h *RentalHandler) List(c echo.Context) error {
	rentals, err := h.service.ListRentals(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidCategory) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := make([]RentalResponse, len(rentals))
	for i, r := range rentals {
		resp[i] = toRentalResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetByID godoc
// @Summary レンタル品目を取得
// @Tags rentals
// @Produce json
// @Param id path string true "品目ID"
// @Success 200 {object} RentalResponse
// @Failure 404 {object} map[string]string
// @Router /rentals/{id} [get]
func (h *RentalHandler) GetByID(c echo.Context) error {
	r, err := h.service.GetRental(c.Request().Context(), c.Param("id"))
	if err != nil {
		return rentalError(err)
	}
	return c.JSON(http.StatusOK, toRentalResponse(*r))
}

// Availability godoc
// @Summary 空き在庫を取得
// @Description 予約ボタンの活性判定に使う空き在庫数を返します
// @Tags rentals
// @Produce json
// @Param id path string true "品目ID"
// @Success 200 {object} AvailabilityResponse
// @Failure 404 {object} map[string]string
// @Router /rentals/{id}/availability [get]
func (h *RentalHandler) Availability(c echo.Context) error {
	r, err := h.service.GetRental(c.Request().Context(), c.Param("id"))
	if err != nil {
		return rentalError(err)
	}
	return c.JSON(http.StatusOK, AvailabilityResponse{
		ItemID:         r.ID,
		TotalStock:     r.TotalStock,
		AvailableStock: r.AvailableStock,
		Bookable:       r.Bookable,
	})
}

func rentalError(err error) error {
	if errors.Is(err, catalog.ErrItemNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
