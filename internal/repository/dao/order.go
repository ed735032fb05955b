package dao

import (
	"context"
	"errors"
	"time"

	"github.com/vietanh2810/resto-ops/internal/store"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderItemNotFound = errors.New("order item not found")
)

type Order struct {
	ID uint `gorm:"primaryKey"`

	TableNumber int       `gorm:"not null;index"`
	Status      string    `gorm:"not null;index"`
	Date        time.Time `gorm:"not null;index"`
	Note        string
	TotalHT     float64 `gorm:"not null;default:0"`
	TVAAmount   float64 `gorm:"not null;default:0"`
	TotalTTC    float64 `gorm:"not null;default:0"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`

	OrderID   uint    `gorm:"not null;index"`
	ProductID uint    `gorm:"not null;index"`
	Quantity  float64 `gorm:"not null"`
	Price     float64 `gorm:"not null"`
	Note      string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

type OrderDAO struct {
	store *store.Store
}

func NewOrderDAO(s *store.Store) *OrderDAO {
	return &OrderDAO{
		store: s,
	}
}

func (d *OrderDAO) Insert(ctx context.Context, order Order) (Order, error) {
	if err := store.Add(ctx, d.store, &order); err != nil {
		return Order{}, err
	}

	return order, nil
}

func (d *OrderDAO) FindByID(ctx context.Context, id uint) (Order, error) {
	order, found, err := store.Get[Order](ctx, d.store, id)
	if err != nil {
		return Order{}, err
	}
	if !found {
		return Order{}, ErrOrderNotFound
	}

	return order, nil
}

func (d *OrderDAO) FindAll(ctx context.Context) ([]Order, error) {
	return store.GetAll[Order](ctx, d.store)
}

func (d *OrderDAO) FindByStatus(ctx context.Context, status string) ([]Order, error) {
	return store.GetByIndex[Order](ctx, d.store, "status", status)
}

func (d *OrderDAO) FindByTableNumber(ctx context.Context, number int) ([]Order, error) {
	return store.GetByIndex[Order](ctx, d.store, "table_number", number)
}

func (d *OrderDAO) Update(ctx context.Context, order Order) (Order, error) {
	if err := store.Update(ctx, d.store, &order); err != nil {
		return Order{}, err
	}

	return order, nil
}

func (d *OrderDAO) Delete(ctx context.Context, id uint) error {
	return store.Delete[Order](ctx, d.store, id)
}

func (d *OrderDAO) InsertItem(ctx context.Context, item OrderItem) (OrderItem, error) {
	if err := store.Add(ctx, d.store, &item); err != nil {
		return OrderItem{}, err
	}

	return item, nil
}

func (d *OrderDAO) FindItemByID(ctx context.Context, id uint) (OrderItem, error) {
	item, found, err := store.Get[OrderItem](ctx, d.store, id)
	if err != nil {
		return OrderItem{}, err
	}
	if !found {
		return OrderItem{}, ErrOrderItemNotFound
	}

	return item, nil
}

func (d *OrderDAO) FindItemsByOrderID(ctx context.Context, orderID uint) ([]OrderItem, error) {
	return store.GetByIndex[OrderItem](ctx, d.store, "order_id", orderID)
}

func (d *OrderDAO) FindItemsByProductID(ctx context.Context, productID uint) ([]OrderItem, error) {
	return store.GetByIndex[OrderItem](ctx, d.store, "product_id", productID)
}

func (d *OrderDAO) UpdateItem(ctx context.Context, item OrderItem) (OrderItem, error) {
	if err := store.Update(ctx, d.store, &item); err != nil {
		return OrderItem{}, err
	}

	return item, nil
}

func (d *OrderDAO) DeleteItem(ctx context.Context, id uint) error {
	return store.Delete[OrderItem](ctx, d.store, id)
}
