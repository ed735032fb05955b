package domain

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in_progress"
	OrderReady      OrderStatus = "ready"
	OrderServed     OrderStatus = "served"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderInProgress, OrderReady, OrderServed, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          uint        `json:"id"`
	TableNumber int         `json:"table_number"`
	Status      OrderStatus `json:"status"`
	Date        time.Time   `json:"date"`
	Note        string      `json:"note"`
	TotalHT     float64     `json:"total_ht"`
	TVAAmount   float64     `json:"tva_amount"`
	TotalTTC    float64     `json:"total_ttc"`
	Items       []OrderItem `json:"items,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OrderItemChanges carries the fields an update may touch; nil means leave
// the field as it is.
type OrderItemChanges struct {
	Quantity *float64 `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Note     *string  `json:"note,omitempty"`
}

// OrderItem is one line of an order. Price snapshots the product's selling
// price at add-time and never follows later catalog edits.
type OrderItem struct {
	ID        uint      `json:"id"`
	OrderID   uint      `json:"order_id"`
	ProductID uint      `json:"product_id"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	Note      string    `json:"note"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
