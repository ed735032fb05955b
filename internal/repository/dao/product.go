package dao

import (
	"context"
	"errors"
	"time"

	"github.com/vietanh2810/resto-ops/internal/store"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product already exists")
)

type Product struct {
	ID uint `gorm:"primaryKey"`

	Name          string  `gorm:"not null;index"`
	Category      string  `gorm:"not null;index"`
	Unit          string  `gorm:"not null"`
	Quantity      float64 `gorm:"not null;default:0"`
	MinStock      float64 `gorm:"not null;default:0"`
	PurchasePrice float64 `gorm:"not null;default:0"`
	SellingPrice  float64 `gorm:"not null;default:0"`
	IsActive      bool    `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Product) TableName() string {
	return "products"
}

type ProductDAO struct {
	store *store.Store
}

func NewProductDAO(s *store.Store) *ProductDAO {
	return &ProductDAO{
		store: s,
	}
}

func (d *ProductDAO) Insert(ctx context.Context, product Product) (Product, error) {
	if err := store.Add(ctx, d.store, &product); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return Product{}, ErrProductExists
		}

		return Product{}, err
	}

	return product, nil
}

func (d *ProductDAO) FindByID(ctx context.Context, id uint) (Product, error) {
	product, found, err := store.Get[Product](ctx, d.store, id)
	if err != nil {
		return Product{}, err
	}
	if !found {
		return Product{}, ErrProductNotFound
	}

	return product, nil
}

func (d *ProductDAO) FindAll(ctx context.Context) ([]Product, error) {
	return store.GetAll[Product](ctx, d.store)
}

func (d *ProductDAO) FindByName(ctx context.Context, name string) ([]Product, error) {
	return store.GetByIndex[Product](ctx, d.store, "name", name)
}

func (d *ProductDAO) FindByCategory(ctx context.Context, category string) ([]Product, error) {
	return store.GetByIndex[Product](ctx, d.store, "category", category)
}

func (d *ProductDAO) FindActive(ctx context.Context) ([]Product, error) {
	return store.GetByIndex[Product](ctx, d.store, "is_active", true)
}

func (d *ProductDAO) Update(ctx context.Context, product Product) (Product, error) {
	if err := store.Update(ctx, d.store, &product); err != nil {
		return Product{}, err
	}

	return product, nil
}
