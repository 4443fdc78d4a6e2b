package inventory

// Status is the availability classification of a product.
type Status string

const (
	StatusInStock      Status = "in_stock"
	StatusLowStock     Status = "low_stock"
	StatusOutOfStock   Status = "out_of_stock"
	StatusDiscontinued Status = "discontinued"
)

// DeriveStatus maps a stock snapshot to its status. It never yields
// StatusDiscontinued; that status is assigned outside the stock rules.
func DeriveStatus(currentStock, minStock int) Status {
	switch {
	case currentStock == 0:
		return StatusOutOfStock
	case currentStock <= minStock:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusOutOfStock, StatusDiscontinued:
		return true
	}
	return false
}
