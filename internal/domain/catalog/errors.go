package catalog

import "errors"

// Catalog ドメインのエラー定義
var (
	ErrItemNotFound    = errors.New("レンタル品目が見つかりません")
	ErrItemIDRequired  = errors.New("品目IDは必須です")
	ErrDuplicateItemID = errors.New("品目IDが重複しています")
	ErrNegativeStock   = errors.New("在庫数は0以上である必要があります")
	ErrInvalidCategory = errors.New("不正なカテゴリです")
)
