package reservation

import (
	"strings"
	"time"
)

// CustomerInfo は予約者の連絡先。任意項目
type CustomerInfo struct {
	Name  string
	Email string
}

// Reservation は品目在庫1台分の期間付き仮押さえ
type Reservation struct {
	ID        string
	ItemID    string
	StartTime time.Time
	EndTime   time.Time
	Duration  string // 画面で選択された期間ラベル（表示・監査用）
	Customer  *CustomerInfo
}

// New は now を開始時刻とした予約を作成する
func New(id, itemID, duration string, customer *CustomerInfo, now time.Time) Reservation {
	var c *CustomerInfo
	if customer != nil {
		cp := *customer
		c = &cp
	}
	return Reservation{
		ID:        id,
		ItemID:    itemID,
		StartTime: now,
		EndTime:   now.Add(Duration(duration)),
		Duration:  duration,
		Customer:  c,
	}
}

// IsActiveAt は now 時点で予約が有効かを返す。EndTime ちょうどは失効扱い
func (r Reservation) IsActiveAt(now time.Time) bool {
	return r.EndTime.After(now)
}

// IsExpiredAt は now 時点で予約が期限切れかを返す
func (r Reservation) IsExpiredAt(now time.Time) bool {
	return !r.IsActiveAt(now)
}

// ValidateRequest は予約リクエストの必須項目を検証する。空白だけの期間も未指定扱い
func ValidateRequest(itemID, duration string) error {
	if itemID == "" {
		return ErrItemIDRequired
	}
	if strings.TrimSpace(duration) == "" {
		return ErrDurationRequired
	}
	return nil
}
