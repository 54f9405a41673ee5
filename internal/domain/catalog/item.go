package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Category はレンタル品目の種別を表す
type Category string

const (
	CategoryBicycle    Category = "bicycle"
	CategoryCar        Category = "car"
	CategoryMotorcycle Category = "motorcycle"
	CategoryQuad       Category = "quad"
	CategoryScooter    Category = "scooter"
)

// Categories は全種別を表示順で返す
func Categories() []Category {
	return []Category{CategoryBicycle, CategoryCar, CategoryMotorcycle, CategoryQuad, CategoryScooter}
}

// ParseCategory は文字列を Category に変換する
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidCategory, s)
}

// Currency は料金の通貨
const Currency = "EUR"

// RentalOption は予約画面に表示するレンタル期間と料金の組
type RentalOption struct {
	Duration string
	Price    decimal.Decimal
}

// Item はレンタル品目の定義。TotalStock は起動後に変わらない
type Item struct {
	ID         string
	Name       string
	Category   Category
	TotalStock int
	Options    []RentalOption
}

// PriceFor は期間ラベルに対応する料金を返す
func (i Item) PriceFor(duration string) (decimal.Decimal, bool) {
	for _, o := range i.Options {
		if o.Duration == duration {
			return o.Price, true
		}
	}
	return decimal.Zero, false
}

// Find はIDから品目を探す
func Find(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Validate はカタログ全体の検証を行う
func Validate(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.ID == "" {
			return ErrItemIDRequired
		}
		if _, ok := seen[it.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateItemID, it.ID)
		}
		if it.TotalStock < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeStock, it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return nil
}
