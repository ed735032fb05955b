package dao

import (
	"context"
	"time"

	"github.com/vietanh2810/resto-ops/internal/store"
)

// InventoryLog rows are append-only. The DAO deliberately exposes no update
// or delete operation on them.
type InventoryLog struct {
	ID uint `gorm:"primaryKey"`

	ProductID uint      `gorm:"not null;index"`
	Date      time.Time `gorm:"not null;index"`
	Quantity  float64   `gorm:"not null"`
	Type      string    `gorm:"not null;index"`
	Reason    string    `gorm:"not null"`
	Reference string
	Note      string

	CreatedAt time.Time `gorm:"not null"`
}

func (InventoryLog) TableName() string {
	return "inventory_log"
}

type InventoryDAO struct {
	store *store.Store
}

func NewInventoryDAO(s *store.Store) *InventoryDAO {
	return &InventoryDAO{
		store: s,
	}
}

func (d *InventoryDAO) Append(ctx context.Context, entry InventoryLog) (InventoryLog, error) {
	if err := store.Add(ctx, d.store, &entry); err != nil {
		return InventoryLog{}, err
	}

	return entry, nil
}

func (d *InventoryDAO) FindAll(ctx context.Context) ([]InventoryLog, error) {
	return store.GetAll[InventoryLog](ctx, d.store)
}

func (d *InventoryDAO) FindByProductID(ctx context.Context, productID uint) ([]InventoryLog, error) {
	return store.GetByIndex[InventoryLog](ctx, d.store, "product_id", productID)
}

func (d *InventoryDAO) FindByType(ctx context.Context, logType string) ([]InventoryLog, error) {
	return store.GetByIndex[InventoryLog](ctx, d.store, "type", logType)
}
