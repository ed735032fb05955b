package domain

import "time"

type InventoryLogType string

const (
	LogEntry InventoryLogType = "entry"
	LogExit  InventoryLogType = "exit"
)

// InventoryLogEntry is one immutable audit row for one signed stock change.
// Quantity holds the absolute value of the delta; Type carries its sign.
// Rows are only ever appended, never updated or deleted.
type InventoryLogEntry struct {
	ID        uint             `json:"id"`
	ProductID uint             `json:"product_id"`
	Date      time.Time        `json:"date"`
	Quantity  float64          `json:"quantity"`
	Type      InventoryLogType `json:"type"`
	Reason    string           `json:"reason"`
	Reference string           `json:"reference"`
	Note      string           `json:"note"`
	CreatedAt time.Time        `json:"created_at"`
}
