package inventory

import (
	"errors"

	"github.com/sanosuguru/go-rental-booking/internal/domain/catalog"
)

// Tracker のエラー定義
var (
	ErrItemNotFound = catalog.ErrItemNotFound
	ErrOutOfStock   = errors.New("在庫がありません")
)
