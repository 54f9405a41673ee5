package reservation

import "errors"

// Reservation ドメインのエラー定義
var (
	ErrReservationNotFound = errors.New("予約が見つかりません")
	ErrItemIDRequired      = errors.New("品目IDは必須です")
	ErrDurationRequired    = errors.New("レンタル期間は必須です")
	ErrInvalidDuration     = errors.New("この品目では選択できないレンタル期間です")
)
