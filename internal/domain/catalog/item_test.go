package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_TotalStock(t *testing.T) {
	want := map[string]int{
		"city-bike":     50,
		"fat-bike":      4,
		"e-bike":        12,
		"mountain-bike": 15,
		"kids-bike":     6,
		"tandem-bike":   2,
		"fiat-500":      3,
		"vw-polo":       4,
		"jeep-wrangler": 2,
		"mini-cabrio":   2,
		"honda-cb500":   2,
		"bmw-gs":        1,
		"quad-single":   6,
		"quad-double":   4,
		"buggy":         3,
		"scooter-50cc":  8,
		"scooter-125cc": 6,
		"e-scooter":     10,
	}

	items := Default()
	require.Len(t, items, len(want))
	for _, it := range items {
		total, ok := want[it.ID]
		require.True(t, ok, "想定外の品目: %s", it.ID)
		assert.Equal(t, total, it.TotalStock, it.ID)
		assert.NotEmpty(t, it.Name, it.ID)
		assert.NotEmpty(t, it.Options, it.ID)
	}
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestDefault_ReturnsFreshCopy(t *testing.T) {
	a := Default()
	a[0].TotalStock = 999
	a[0].Options[0].Duration = "changed"

	b := Default()
	assert.Equal(t, 50, b[0].TotalStock)
	assert.Equal(t, "1h", b[0].Options[0].Duration)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		items   []Item
		wantErr error
	}{
		{"空のカタログ", nil, nil},
		{"正常", []Item{{ID: "a", TotalStock: 1}, {ID: "b", TotalStock: 0}}, nil},
		{"ID未指定", []Item{{ID: "", TotalStock: 1}}, ErrItemIDRequired},
		{"ID重複", []Item{{ID: "a", TotalStock: 1}, {ID: "a", TotalStock: 2}}, ErrDuplicateItemID},
		{"在庫が負", []Item{{ID: "a", TotalStock: -1}}, ErrNegativeStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.items)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestItem_PriceFor(t *testing.T) {
	it, ok := Find(Default(), "quad-single")
	require.True(t, ok)

	price, ok := it.PriceFor("30 min")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(35).Equal(price))

	_, ok = it.PriceFor("1 Semana")
	assert.False(t, ok)
}

func TestFind(t *testing.T) {
	items := Default()

	it, ok := Find(items, "fat-bike")
	require.True(t, ok)
	assert.Equal(t, "Fat Bike", it.Name)
	assert.Equal(t, CategoryBicycle, it.Category)

	_, ok = Find(items, "unknown-id")
	assert.False(t, ok)
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("boat")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestDefault_CoversEveryCategory(t *testing.T) {
	seen := make(map[Category]bool)
	for _, it := range Default() {
		seen[it.Category] = true
	}
	for _, c := range Categories() {
		assert.True(t, seen[c], "category %s has no items", c)
	}
}
