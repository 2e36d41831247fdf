// Package seed bundles the demo listing catalog. Entries are compiled in,
// never persisted; live documents override them by id.
package seed

import (
	"time"

	"github.com/Kento03Onodera/pick-re-crm/internal/properties/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var catalog = []domain.Property{
	{
		ID: "p1", Name: "パークコート渋谷ザ・タワー",
		Address: "東京都渋谷区宇田川町", Price: 150_000_000,
		Layout: "3LDK", Size: 85.5, BuiltYear: 2020, Status: domain.StatusActive,
		Images:    []string{"https://images.example.com/properties/p1-1.jpg"},
		CreatedAt: date(2024, time.April, 1),
	},
	{
		ID: "p2", Name: "シティタワー恵比寿",
		Address: "東京都渋谷区恵比寿", Price: 120_000_000,
		Layout: "2LDK", Size: 68.2, BuiltYear: 2018, Status: domain.StatusActive,
		Images:    []string{"https://images.example.com/properties/p2-1.jpg"},
		CreatedAt: date(2024, time.April, 15),
	},
	{
		ID: "p3", Name: "ブリリア有明シティタワー",
		Address: "東京都江東区有明", Price: 78_000_000,
		Layout: "3LDK", Size: 72.4, BuiltYear: 2015, Status: domain.StatusNegotiating,
		Images:    []string{"https://images.example.com/properties/p3-1.jpg"},
		Memo:      "眺望良好。売主は早期売却希望。",
		CreatedAt: date(2024, time.May, 10),
	},
	{
		ID: "p4", Name: "プラウド世田谷砧",
		Address: "東京都世田谷区砧", Price: 92_000_000,
		Layout: "4LDK", Size: 95.0, BuiltYear: 2012, Status: domain.StatusActive,
		Images:    []string{"https://images.example.com/properties/p4-1.jpg"},
		CreatedAt: date(2024, time.June, 3),
	},
	{
		ID: "p5", Name: "ザ・パークハウス目黒",
		Address: "東京都目黒区下目黒", Price: 135_000_000,
		Layout: "2SLDK", Size: 74.8, BuiltYear: 2021, Status: domain.StatusActive,
		Images:    []string{"https://images.example.com/properties/p5-1.jpg"},
		CreatedAt: date(2024, time.July, 20),
	},
	{
		ID: "p6", Name: "ライオンズマンション練馬",
		Address: "東京都練馬区豊玉北", Price: 42_000_000,
		Layout: "3DK", Size: 60.1, BuiltYear: 2005, Status: domain.StatusSold,
		Images:    []string{"https://images.example.com/properties/p6-1.jpg"},
		CreatedAt: date(2024, time.March, 8),
	},
}

// Catalog returns a copy of the bundled listings so callers cannot mutate
// the compiled-in entries.
func Catalog() []domain.Property {
	out := make([]domain.Property, len(catalog))
	copy(out, catalog)
	return out
}
