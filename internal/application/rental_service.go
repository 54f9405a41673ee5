package application

import (
	"context"

	"github.com/sanosuguru/go-rental-booking/internal/domain/catalog"
)

// Rental は品目と現在の空き在庫
type Rental struct {
	catalog.Item
	AvailableStock int
	Bookable       bool
}

type RentalService struct {
	inventory Inventory
}

func NewRentalService(inv Inventory) *RentalService {
	return &RentalService{inventory: inv}
}

// ListRentals は品目一覧を返す。category が空なら全件
func (s *RentalService) ListRentals(ctx context.Context, category string) ([]Rental, error) {
	var filter catalog.Category
	if category != "" {
		c, err := catalog.ParseCategory(category)
		if err != nil {
			return nil, err
		}
		filter = c
	}

	items := s.inventory.Items()
	rentals := make([]Rental, 0, len(items))
	for _, it := range items {
		if filter != "" && it.Category != filter {
			continue
		}
		rentals = append(rentals, s.toRental(it))
	}
	return rentals, nil
}

func (s *RentalService) GetRental(ctx context.Context, id string) (*Rental, error) {
	it, ok := s.inventory.Item(id)
	if !ok {
		return nil, catalog.ErrItemNotFound
	}
	r := s.toRental(it)
	return &r, nil
}

// GetAvailableStock は品目の空き在庫数を返す
func (s *RentalService) GetAvailableStock(ctx context.Context, id string) (int, error) {
	if _, ok := s.inventory.Item(id); !ok {
		return 0, catalog.ErrItemNotFound
	}
	return s.inventory.GetAvailableStock(id), nil
}

func (s *RentalService) toRental(it catalog.Item) Rental {
	available := s.inventory.GetAvailableStock(it.ID)
	return Rental{
		Item:           it,
		AvailableStock: available,
		Bookable:       available > 0,
	}
}
