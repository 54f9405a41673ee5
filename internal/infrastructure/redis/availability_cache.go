package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanosuguru/go-rental-booking/internal/inventory"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// AvailabilityCache は在庫スナップショットを外部表示用にRedisへ書き出す。
// 書き出し専用で、トラッカーへ読み戻すことはない。
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAvailabilityCache は新しいAvailabilityCacheインスタンスを作成する
func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

// PublishAvailability はスナップショットの全品目をまとめて保存する
func (c *AvailabilityCache) PublishAvailability(ctx context.Context, snapshot []inventory.Availability) error {
	if len(snapshot) == 0 {
		return nil
	}

	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, a := range snapshot {
			pipe.Set(ctx, availableCountKey(a.ItemID), a.AvailableStock, c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("在庫キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// GetAvailableCount は品目の空き在庫をキャッシュから取得する
func (c *AvailabilityCache) GetAvailableCount(ctx context.Context, itemID string) (int, error) {
	val, err := c.client.Get(ctx, availableCountKey(itemID)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	return val, nil
}

// FreshnessCheck はヘルスチェック用の関数を返す。
// リフレッシュが止まるとTTLでキーが消えるため、itemID のキーが無ければ失敗とする。
func (c *AvailabilityCache) FreshnessCheck(itemID string) func(context.Context) error {
	return func(ctx context.Context) error {
		if _, err := c.GetAvailableCount(ctx, itemID); err != nil {
			return fmt.Errorf("在庫キャッシュが更新されていません: %w", err)
		}
		return nil
	}
}

// Invalidate は品目のキャッシュを無効化する。停止時に古い表示を残さないために使う
func (c *AvailabilityCache) Invalidate(ctx context.Context, itemIDs ...string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	keys := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		keys[i] = availableCountKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func availableCountKey(itemID string) string {
	return fmt.Sprintf("rental:available:%s", itemID)
}
