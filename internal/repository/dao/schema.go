package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/store"
)

// SchemaVersion is the schema version this build of the code expects.
// Bump it together with a new entry in migrations().
const SchemaVersion = 2

// Schema describes every collection of the operations store, the seed loader
// for a fresh database, and the ordered upgrade list.
func Schema() store.Schema {
	return store.Schema{
		Version: SchemaVersion,
		Collections: []store.Collection{
			{
				Name:  "products",
				Model: &Product{},
				Indexes: []store.Index{
					{Field: "name"},
					{Field: "category"},
					{Field: "is_active"},
				},
			},
			{
				Name:  "orders",
				Model: &Order{},
				Indexes: []store.Index{
					{Field: "date"},
					{Field: "table_number"},
					{Field: "status"},
				},
			},
			{
				Name:  "order_items",
				Model: &OrderItem{},
				Indexes: []store.Index{
					{Field: "order_id"},
					{Field: "product_id"},
				},
			},
			{
				Name:  "inventory_log",
				Model: &InventoryLog{},
				Indexes: []store.Index{
					{Field: "product_id"},
					{Field: "date"},
					{Field: "type"},
				},
			},
			{
				Name:  "reservations",
				Model: &Reservation{},
				Indexes: []store.Index{
					{Field: "date"},
					{Field: "name"},
					{Field: "status"},
					{Field: "table_id"},
				},
			},
			{
				Name:  "tables",
				Model: &Table{},
				Indexes: []store.Index{
					{Field: "number", Unique: true},
					{Field: "status"},
					{Field: "capacity"},
				},
			},
			{
				Name:  "settings",
				Model: &Setting{},
				Indexes: []store.Index{
					{Field: "category"},
				},
			},
		},
		Seed:       initializeData,
		Migrations: migrations(),
	}
}

// initializeData populates a fresh store: a starter product catalog, the
// fixed table layout, and default settings. Each collection is seeded inside
// its own transaction.
func initializeData(ctx context.Context, s *store.Store) error {
	if err := s.Tx(ctx, func(tx *store.Store) error {
		for _, p := range starterCatalog() {
			p := p
			if err := store.Add(ctx, tx, &p); err != nil {
				return fmt.Errorf("seed product %v -> %w", p.Name, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := s.Tx(ctx, func(tx *store.Store) error {
		for _, t := range defaultLayout() {
			t := t
			if err := store.Add(ctx, tx, &t); err != nil {
				return fmt.Errorf("seed table %v -> %w", t.Number, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	return s.Tx(ctx, func(tx *store.Store) error {
		for _, st := range defaultSettings() {
			st := st
			if err := store.Add(ctx, tx, &st); err != nil {
				return fmt.Errorf("seed setting %v/%v -> %w", st.Category, st.Name, err)
			}
		}
		return nil
	})
}

func starterCatalog() []Product {
	return []Product{
		{Name: "Beef fillet", Category: domain.CategorySupplies, Unit: "kg", Quantity: 20, MinStock: 5, PurchasePrice: 28, IsActive: true},
		{Name: "Salmon", Category: domain.CategorySupplies, Unit: "kg", Quantity: 12, MinStock: 3, PurchasePrice: 22, IsActive: true},
		{Name: "Potatoes", Category: domain.CategorySupplies, Unit: "kg", Quantity: 50, MinStock: 10, PurchasePrice: 1.2, IsActive: true},
		{Name: "Olive oil", Category: domain.CategorySupplies, Unit: "l", Quantity: 15, MinStock: 4, PurchasePrice: 9.5, IsActive: true},
		{Name: "House red wine", Category: "drinks", Unit: "cl", Quantity: 3000, MinStock: 750, PurchasePrice: 0.04, SellingPrice: 0.18, IsActive: true},
		{Name: "Onion soup", Category: "starters", Unit: domain.UnitPiece, SellingPrice: 8.5, IsActive: true},
		{Name: "Steak frites", Category: "mains", Unit: domain.UnitPiece, SellingPrice: 19.5, IsActive: true},
		{Name: "Grilled salmon", Category: "mains", Unit: domain.UnitPiece, SellingPrice: 21, IsActive: true},
		{Name: "Creme brulee", Category: "desserts", Unit: domain.UnitPiece, SellingPrice: 7.5, IsActive: true},
	}
}

func defaultLayout() []Table {
	return []Table{
		{Number: 1, Capacity: 2, Status: string(domain.TableAvailable), Shape: "round", PosX: 0, PosY: 0},
		{Number: 2, Capacity: 2, Status: string(domain.TableAvailable), Shape: "round", PosX: 1, PosY: 0},
		{Number: 3, Capacity: 4, Status: string(domain.TableAvailable), Shape: "square", PosX: 2, PosY: 0},
		{Number: 4, Capacity: 4, Status: string(domain.TableAvailable), Shape: "square", PosX: 0, PosY: 1},
		{Number: 5, Capacity: 4, Status: string(domain.TableAvailable), Shape: "square", PosX: 1, PosY: 1},
		{Number: 6, Capacity: 6, Status: string(domain.TableAvailable), Shape: "rectangle", PosX: 2, PosY: 1},
		{Number: 7, Capacity: 6, Status: string(domain.TableAvailable), Shape: "rectangle", PosX: 0, PosY: 2},
		{Number: 8, Capacity: 8, Status: string(domain.TableAvailable), Shape: "rectangle", PosX: 1, PosY: 2},
	}
}

func defaultSettings() []Setting {
	return []Setting{
		{Category: "billing", Name: "tva_rate", Value: "0.10"},
		{Category: "billing", Name: "currency", Value: "EUR"},
		{Category: "reservations", Name: "duration_minutes", Value: "120"},
		{Category: "catalog", Name: "categories", Value: "starters,mains,desserts,drinks,supplies"},
		{Category: "catalog", Name: "units", Value: "unit,kg,g,l,cl,piece"},
	}
}

func migrations() []store.Migration {
	return []store.Migration{
		{
			Version:     1,
			Description: "recompute order totals from items",
			Run: func(ctx context.Context, tx *store.Store) error {
				orders, err := store.GetAll[Order](ctx, tx)
				if err != nil {
					return err
				}

				for _, o := range orders {
					items, err := store.GetByIndex[OrderItem](ctx, tx, "order_id", o.ID)
					if err != nil {
						return err
					}

					var ttc float64
					for _, it := range items {
						ttc += it.Quantity * it.Price
					}
					ht := ttc / 1.10

					if err := tx.DB().WithContext(ctx).Model(&Order{}).
						Where("id = ?", o.ID).
						Updates(map[string]any{
							"total_ttc":  ttc,
							"total_ht":   ht,
							"tva_amount": ttc - ht,
						}).Error; err != nil {
						return err
					}
				}

				return nil
			},
		},
		{
			Version:     2,
			Description: "backfill reservation settings",
			Run: func(ctx context.Context, tx *store.Store) error {
				wanted := []Setting{
					{Category: "reservations", Name: "duration_minutes", Value: "120"},
					{Category: "reservations", Name: "last_seating", Value: "21:30"},
				}

				for _, w := range wanted {
					w := w
					var existing Setting
					err := tx.DB().WithContext(ctx).
						Where("category = ? AND name = ?", w.Category, w.Name).
						First(&existing).Error
					if err == nil {
						continue
					}
					if !errors.Is(err, gorm.ErrRecordNotFound) {
						return err
					}

					w.CreatedAt = time.Now()
					w.UpdatedAt = w.CreatedAt
					if err := store.Add(ctx, tx, &w); err != nil {
						return err
					}
				}

				return nil
			},
		},
	}
}
