package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-rental-booking/internal/inventory"
	"github.com/sanosuguru/go-rental-booking/internal/pkg/logger"
)

const defaultHeartbeat = 15 * time.Second

// StreamHandler は在庫スナップショットを Server-Sent Events で配信する
type StreamHandler struct {
	feed      AvailabilityFeed
	heartbeat time.Duration
}

func NewStreamHandler(feed AvailabilityFeed) *StreamHandler {
	return &StreamHandler{feed: feed, heartbeat: defaultHeartbeat}
}

// Availability godoc
// @Summary 在庫ストリーム
// @Description 接続直後に現在の在庫を送り、以降はリフレッシュごとに送ります
// @Tags rentals
// @Produce text/event-stream
// @Success 200
// @Router /availability/stream [get]
func (h *StreamHandler) Availability(c echo.Context) error {
	ch, unsubscribe := h.feed.Subscribe()
	defer unsubscribe()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.Header().Set("X-Accel-Buffering", "no")
	res.WriteHeader(http.StatusOK)

	// サーバーの WriteTimeout で切断されないようにする
	_ = http.NewResponseController(res.Writer).SetWriteDeadline(time.Time{})

	if err := writeSnapshot(res, h.feed.Snapshot()); err != nil {
		return nil
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case snapshot, ok := <-ch:
			if !ok {
				return nil
			}
			if err := writeSnapshot(res, snapshot); err != nil {
				logger.Debug("在庫ストリームの送信失敗", zap.Error(err))
				return nil
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

func writeSnapshot(res *echo.Response, snapshot []inventory.Availability) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: availability\ndata: %s\n\n", data); err != nil {
		return err
	}
	res.Flush()
	return nil
}
