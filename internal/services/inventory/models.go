package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryFurniture   Category = "furniture"
	CategoryClothing    Category = "clothing"
	CategoryFood        Category = "food"
	CategoryTools       Category = "tools"
	CategoryPackaging   Category = "packaging"
	CategoryOther       Category = "other"
)

type Unit string

const (
	UnitPieces  Unit = "pieces"
	UnitBoxes   Unit = "boxes"
	UnitPallets Unit = "pallets"
	UnitKg      Unit = "kg"
	UnitLiters  Unit = "liters"
)

type AdjustmentType string

const (
	AdjustmentIncrease    AdjustmentType = "increase"
	AdjustmentDecrease    AdjustmentType = "decrease"
	AdjustmentCorrection  AdjustmentType = "correction"
	AdjustmentTransferIn  AdjustmentType = "transfer_in"
	AdjustmentTransferOut AdjustmentType = "transfer_out"
)

func (t AdjustmentType) Valid() bool {
	switch t {
	case AdjustmentIncrease, AdjustmentDecrease, AdjustmentCorrection, AdjustmentTransferIn, AdjustmentTransferOut:
		return true
	}
	return false
}

type Reason string

const (
	ReasonReceivedShipment Reason = "received_shipment"
	ReasonSold             Reason = "sold"
	ReasonDamaged          Reason = "damaged"
	ReasonLost             Reason = "lost"
	ReasonReturned         Reason = "returned"
	ReasonInventoryCount   Reason = "inventory_count"
	ReasonTransfer         Reason = "transfer"
	ReasonOther            Reason = "other"
)

func (r Reason) Valid() bool {
	switch r {
	case ReasonReceivedShipment, ReasonSold, ReasonDamaged, ReasonLost, ReasonReturned,
		ReasonInventoryCount, ReasonTransfer, ReasonOther:
		return true
	}
	return false
}

// UnknownActor is recorded as AdjustedBy when no identity was resolved.
const UnknownActor = "unknown"

// Location is where a product sits in the warehouse.
type Location struct {
	Zone  string `json:"zone"`
	Aisle string `json:"aisle"`
	Rack  string `json:"rack"`
	Shelf string `json:"shelf"`
}

// Product is a catalog entry. Status is always derived from CurrentStock and
// MinStock, except for discontinued products.
type Product struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     Category        `json:"category"`
	CurrentStock int             `json:"currentStock"`
	MinStock     int             `json:"minStock"`
	MaxStock     int             `json:"maxStock"`
	Unit         Unit            `json:"unit"`
	Location     Location        `json:"location"`
	Price        decimal.Decimal `json:"price"`
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Adjustment is an immutable record of one stock change. ProductSKU and
// ProductName are copied from the product at adjustment time.
type Adjustment struct {
	ID             string         `json:"id"`
	ProductID      string         `json:"productId"`
	ProductSKU     string         `json:"productSku"`
	ProductName    string         `json:"productName"`
	PreviousStock  int            `json:"previousStock"`
	NewStock       int            `json:"newStock"`
	AdjustmentType AdjustmentType `json:"adjustmentType"`
	Reason         Reason         `json:"reason"`
	Notes          string         `json:"notes,omitempty"`
	AdjustedBy     string         `json:"adjustedBy"`
	AdjustedAt     time.Time      `json:"adjustedAt"`
}

// StockAdjustmentInput is what a caller declares when changing stock.
type StockAdjustmentInput struct {
	ProductID      string
	NewStock       int
	AdjustmentType AdjustmentType
	Reason         Reason
	Notes          string
}

// SearchFilter narrows a catalog search. Zero-valued fields impose no
// constraint; all set fields must match.
type SearchFilter struct {
	Text     string
	Category Category
	Status   Status
	MinStock *int
	MaxStock *int
}
