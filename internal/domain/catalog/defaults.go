package catalog

import "github.com/shopspring/decimal"

func opt(duration, price string) RentalOption {
	return RentalOption{Duration: duration, Price: decimal.RequireFromString(price)}
}

var (
	bikeOptions = []RentalOption{
		opt("1h", "5"), opt("4h", "12"), opt("Todo el día", "18"), opt("3 Días", "45"),
	}
	carOptions = []RentalOption{
		opt("1 Día", "45"), opt("3 Días", "120"), opt("7 Días", "260"),
	}
	motorcycleOptions = []RentalOption{
		opt("4h", "40"), opt("1 Día", "70"), opt("3 Días", "190"),
	}
	quadOptions = []RentalOption{
		opt("30 min", "35"), opt("1h", "60"), opt("2h", "100"),
	}
	scooterOptions = []RentalOption{
		opt("1h", "12"), opt("4h", "30"), opt("1 Día", "40"),
	}
)

func withOptions(base []RentalOption, extra ...RentalOption) []RentalOption {
	out := make([]RentalOption, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

// Default は初期カタログを返す。呼び出しごとに新しいスライスを返す
func Default() []Item {
	return []Item{
		{ID: "city-bike", Name: "City Bike", Category: CategoryBicycle, TotalStock: 50, Options: withOptions(bikeOptions)},
		{ID: "fat-bike", Name: "Fat Bike", Category: CategoryBicycle, TotalStock: 4, Options: withOptions(bikeOptions)},
		{ID: "e-bike", Name: "E-Bike", Category: CategoryBicycle, TotalStock: 12, Options: withOptions(bikeOptions)},
		{ID: "mountain-bike", Name: "Mountain Bike", Category: CategoryBicycle, TotalStock: 15, Options: withOptions(bikeOptions)},
		{ID: "kids-bike", Name: "Kids Bike", Category: CategoryBicycle, TotalStock: 6, Options: withOptions(bikeOptions)},
		{ID: "tandem-bike", Name: "Tandem", Category: CategoryBicycle, TotalStock: 2, Options: withOptions(bikeOptions)},

		{ID: "fiat-500", Name: "Fiat 500", Category: CategoryCar, TotalStock: 3, Options: withOptions(carOptions)},
		{ID: "vw-polo", Name: "Volkswagen Polo", Category: CategoryCar, TotalStock: 4, Options: withOptions(carOptions)},
		{ID: "jeep-wrangler", Name: "Jeep Wrangler", Category: CategoryCar, TotalStock: 2, Options: withOptions(carOptions)},
		{ID: "mini-cabrio", Name: "Mini Cabrio", Category: CategoryCar, TotalStock: 2, Options: withOptions(carOptions)},

		{ID: "honda-cb500", Name: "Honda CB500", Category: CategoryMotorcycle, TotalStock: 2, Options: withOptions(motorcycleOptions)},
		{ID: "bmw-gs", Name: "BMW R 1250 GS", Category: CategoryMotorcycle, TotalStock: 1, Options: withOptions(motorcycleOptions)},

		{ID: "quad-single", Name: "Quad 1 plaza", Category: CategoryQuad, TotalStock: 6, Options: withOptions(quadOptions)},
		{ID: "quad-double", Name: "Quad 2 plazas", Category: CategoryQuad, TotalStock: 4, Options: withOptions(quadOptions)},
		{ID: "buggy", Name: "Buggy", Category: CategoryQuad, TotalStock: 3, Options: withOptions(quadOptions, opt("1 hora", "80"))},

		{ID: "scooter-50cc", Name: "Scooter 50cc", Category: CategoryScooter, TotalStock: 8, Options: withOptions(scooterOptions)},
		{ID: "scooter-125cc", Name: "Scooter 125cc", Category: CategoryScooter, TotalStock: 6, Options: withOptions(scooterOptions)},
		{ID: "e-scooter", Name: "Patinete eléctrico", Category: CategoryScooter, TotalStock: 10, Options: withOptions(scooterOptions)},
	}
}
