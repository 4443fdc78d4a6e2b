package inventory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// DemoProducts is the starting catalog of the demo warehouse.
func DemoProducts() []Product {
	return []Product{
		{
			ID: "1", SKU: "ELEC-001", Name: "Wireless Keyboard",
			Description: "Ergonomic wireless keyboard with backlit keys",
			Category:    CategoryElectronics, Unit: UnitPieces,
			CurrentStock: 150, MinStock: 20, MaxStock: 500,
			Location:  Location{Zone: "A", Aisle: "01", Rack: "R1", Shelf: "S3"},
			Price:     decimal.RequireFromString("49.99"),
			CreatedAt: date("2024-01-15"), UpdatedAt: date("2024-06-10"),
		},
		{
			ID: "2", SKU: "ELEC-002", Name: "USB-C Hub 7-in-1",
			Description: "Multi-port USB-C hub with HDMI and card reader",
			Category:    CategoryElectronics, Unit: UnitPieces,
			CurrentStock: 8, MinStock: 15, MaxStock: 200,
			Location:  Location{Zone: "A", Aisle: "01", Rack: "R2", Shelf: "S1"},
			Price:     decimal.RequireFromString("39.99"),
			CreatedAt: date("2024-02-20"), UpdatedAt: date("2024-06-12"),
		},
		{
			ID: "3", SKU: "FURN-001", Name: "Standing Desk Frame",
			Description: "Electric height-adjustable desk frame",
			Category:    CategoryFurniture, Unit: UnitPieces,
			CurrentStock: 0, MinStock: 5, MaxStock: 50,
			Location:  Location{Zone: "B", Aisle: "03", Rack: "R1", Shelf: "S1"},
			Price:     decimal.RequireFromString("299.99"),
			CreatedAt: date("2024-03-01"), UpdatedAt: date("2024-06-08"),
		},
		{
			ID: "4", SKU: "PACK-001", Name: "Cardboard Boxes (Medium)",
			Description: "12x12x12 inch shipping boxes",
			Category:    CategoryPackaging, Unit: UnitPieces,
			CurrentStock: 2500, MinStock: 500, MaxStock: 5000,
			Location:  Location{Zone: "C", Aisle: "01", Rack: "R1", Shelf: "S1"},
			Price:     decimal.RequireFromString("1.25"),
			CreatedAt: date("2024-01-01"), UpdatedAt: date("2024-06-15"),
		},
		{
			ID: "5", SKU: "TOOL-001", Name: "Cordless Drill Set",
			Description: "20V cordless drill with battery and case",
			Category:    CategoryTools, Unit: UnitPieces,
			CurrentStock: 45, MinStock: 10, MaxStock: 100,
			Location:  Location{Zone: "D", Aisle: "02", Rack: "R3", Shelf: "S2"},
			Price:     decimal.RequireFromString("129.99"),
			CreatedAt: date("2024-04-10"), UpdatedAt: date("2024-06-14"),
		},
		{
			ID: "6", SKU: "ELEC-003", Name: "Bluetooth Mouse",
			Description: "Ergonomic vertical mouse with adjustable DPI",
			Category:    CategoryElectronics, Unit: UnitPieces,
			CurrentStock: 78, MinStock: 25, MaxStock: 300,
			Location:  Location{Zone: "A", Aisle: "01", Rack: "R1", Shelf: "S4"},
			Price:     decimal.RequireFromString("34.99"),
			CreatedAt: date("2024-02-15"), UpdatedAt: date("2024-06-11"),
		},
	}
}

func Seed(c *Catalog, products []Product) error {
	for _, p := range products {
		if _, err := c.Add(p); err != nil {
			return fmt.Errorf("seed %s: %w", p.SKU, err)
		}
	}
	return nil
}
