package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/repository/dao"
)

var (
	ErrProductNotFound = dao.ErrProductNotFound
	ErrProductExists   = dao.ErrProductExists
)

type ProductDAO interface {
	Insert(ctx context.Context, product dao.Product) (dao.Product, error)
	FindByID(ctx context.Context, id uint) (dao.Product, error)
	FindAll(ctx context.Context) ([]dao.Product, error)
	FindByName(ctx context.Context, name string) ([]dao.Product, error)
	FindByCategory(ctx context.Context, category string) ([]dao.Product, error)
	FindActive(ctx context.Context) ([]dao.Product, error)
	Update(ctx context.Context, product dao.Product) (dao.Product, error)
}

type ProductRepository struct {
	dao ProductDAO
}

func NewProductRepository(dao ProductDAO) *ProductRepository {
	return &ProductRepository{
		dao: dao,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	created, err := r.dao.Insert(ctx, productDomainToDao(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return productDaoToDomain(created), nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (domain.Product, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return productDaoToDomain(found), nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return productsDaoToDomain(found), nil
}

func (r *ProductRepository) FindActive(ctx context.Context) ([]domain.Product, error) {
	found, err := r.dao.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActive -> %w", err)
	}

	return productsDaoToDomain(found), nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) ([]domain.Product, error) {
	found, err := r.dao.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByName -> %w", err)
	}

	return productsDaoToDomain(found), nil
}

func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	found, err := r.dao.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByCategory -> %w", err)
	}

	return productsDaoToDomain(found), nil
}

func (r *ProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	updated, err := r.dao.Update(ctx, productDomainToDao(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return productDaoToDomain(updated), nil
}

// Deactivate soft-deletes a product. Products are never hard-deleted while
// order items reference them; the catalog simply stops offering them.
func (r *ProductRepository) Deactivate(ctx context.Context, id uint) (domain.Product, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	found.IsActive = false
	updated, err := r.dao.Update(ctx, found)
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return productDaoToDomain(updated), nil
}

func productDomainToDao(p domain.Product) dao.Product {
	return dao.Product{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Unit:          p.Unit,
		Quantity:      p.Quantity,
		MinStock:      p.MinStock,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func productDaoToDomain(p dao.Product) domain.Product {
	return domain.Product{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Unit:          p.Unit,
		Quantity:      p.Quantity,
		MinStock:      p.MinStock,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func productsDaoToDomain(products []dao.Product) []domain.Product {
	result := make([]domain.Product, len(products))
	for i, p := range products {
		result[i] = productDaoToDomain(p)
	}

	return result
}
