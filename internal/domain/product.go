package domain

import "time"

const (
	// CategorySupplies marks raw-material products that are always
	// stock-tracked regardless of unit.
	CategorySupplies = "supplies"

	// UnitPiece is the unit of menu dishes sold without inventory tracking.
	UnitPiece = "unit"
)

type Product struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Unit          string    `json:"unit"`
	Quantity      float64   `json:"quantity"`
	MinStock      float64   `json:"min_stock"`
	PurchasePrice float64   `json:"purchase_price"`
	SellingPrice  float64   `json:"selling_price"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StockTracked reports whether the product's quantity is subject to the
// non-negativity invariant. Menu dishes sold by the unit are exempt.
func (p Product) StockTracked() bool {
	return p.Unit != UnitPiece || p.Category == CategorySupplies
}

// BelowMinStock reports whether on-hand quantity has dropped under the
// reorder threshold.
func (p Product) BelowMinStock() bool {
	return p.StockTracked() && p.Quantity < p.MinStock
}
