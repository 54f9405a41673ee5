package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-rental-booking/internal/domain/catalog"
	"github.com/sanosuguru/go-rental-booking/internal/domain/reservation"
	"github.com/sanosuguru/go-rental-booking/internal/inventory"
	"github.com/sanosuguru/go-rental-booking/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      int    `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor はハンドラーが素のドメインエラーを返した場合の変換
func statusFor(err error) (int, string, bool) {
	switch {
	case errors.Is(err, inventory.ErrOutOfStock):
		return http.StatusConflict, err.Error(), true
	case errors.Is(err, catalog.ErrItemNotFound):
		return http.StatusNotFound, catalog.ErrItemNotFound.Error(), true
	case errors.Is(err, reservation.ErrReservationNotFound):
		return http.StatusNotFound, reservation.ErrReservationNotFound.Error(), true
	case errors.Is(err, catalog.ErrInvalidCategory),
		errors.Is(err, reservation.ErrInvalidDuration),
		errors.Is(err, reservation.ErrItemIDRequired),
		errors.Is(err, reservation.ErrDurationRequired):
		return http.StatusBadRequest, err.Error(), true
	}
	return 0, "", false
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		code    = http.StatusInternalServerError
		message = "内部サーバーエラー"
	)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	} else if sc, msg, ok := statusFor(err); ok {
		code, message = sc, msg
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)

	if code >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("path", c.Request().URL.Path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}

	// HEAD はボディなし
	if c.Request().Method == http.MethodHead {
		if err := c.NoContent(code); err != nil {
			logger.Error("エラーレスポンス送信失敗", zap.Error(err))
		}
		return
	}

	if err := c.JSON(code, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestID,
	}); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
