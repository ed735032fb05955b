package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/repository"
)

var ErrProductExists = repository.ErrProductExists

type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id uint) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByName(ctx context.Context, name string) ([]domain.Product, error)
	FindActive(ctx context.Context) ([]domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Deactivate(ctx context.Context, id uint) (domain.Product, error)
}

// EnumProvider exposes the configured category and unit ids used for
// catalog validation.
type EnumProvider interface {
	CategoryIDs() []string
	UnitIDs() []string
}

// CatalogService manages the product catalog. Products referenced by order
// items are only ever soft-deleted.
type CatalogService struct {
	repo  ProductRepository
	enums EnumProvider
}

func NewCatalogService(repo ProductRepository, enums EnumProvider) *CatalogService {
	return &CatalogService{
		repo:  repo,
		enums: enums,
	}
}

// CreateProduct adds a catalog entry. Names are unique across the catalog.
func (s *CatalogService) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := s.validateProduct(product); err != nil {
		return domain.Product{}, err
	}

	if err := s.checkNameFree(ctx, product.Name); err != nil {
		return domain.Product{}, err
	}

	product.IsActive = true
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return product, nil
}

func (s *CatalogService) GetProducts(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	var (
		products []domain.Product
		err      error
	)

	if activeOnly {
		products, err = s.repo.FindActive(ctx)
	} else {
		products, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return products, nil
}

func (s *CatalogService) GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	if !contains(s.enums.CategoryIDs(), category) {
		return nil, domain.NewValidationError("category", "unknown category %q", category)
	}

	products, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByCategory -> %w", err)
	}

	return products, nil
}

// UpdateProduct edits catalog fields. Quantity is owned by the stock ledger
// and is deliberately carried over from the stored record.
func (s *CatalogService) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := s.validateProduct(product); err != nil {
		return domain.Product{}, err
	}

	existing, err := s.repo.FindByID(ctx, product.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if product.Name != existing.Name {
		if err := s.checkNameFree(ctx, product.Name); err != nil {
			return domain.Product{}, err
		}
	}

	product.Quantity = existing.Quantity
	product.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeactivateProduct soft-deletes: the product disappears from the active
// catalog but stays resolvable from historical order items.
func (s *CatalogService) DeactivateProduct(ctx context.Context, id uint) (domain.Product, error) {
	deactivated, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.Deactivate -> %w", err)
	}

	return deactivated, nil
}

func (s *CatalogService) checkNameFree(ctx context.Context, name string) error {
	dupes, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return fmt.Errorf("s.repo.FindByName -> %w", err)
	}
	if len(dupes) > 0 {
		return ErrProductExists
	}

	return nil
}

func (s *CatalogService) validateProduct(product domain.Product) error {
	if product.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if !contains(s.enums.CategoryIDs(), product.Category) {
		return domain.NewValidationError("category", "unknown category %q", product.Category)
	}
	if !contains(s.enums.UnitIDs(), product.Unit) {
		return domain.NewValidationError("unit", "unknown unit %q", product.Unit)
	}
	if product.PurchasePrice < 0 {
		return domain.NewValidationError("purchase_price", "must not be negative, got %v", product.PurchasePrice)
	}
	if product.SellingPrice < 0 {
		return domain.NewValidationError("selling_price", "must not be negative, got %v", product.SellingPrice)
	}
	if product.MinStock < 0 {
		return domain.NewValidationError("min_stock", "must not be negative, got %v", product.MinStock)
	}
	if product.StockTracked() && product.Quantity < 0 {
		return domain.NewValidationError("quantity", "must not be negative for stock-tracked products, got %v", product.Quantity)
	}

	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
