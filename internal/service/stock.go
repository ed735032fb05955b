package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/repository"
)

var (
	ErrProductNotFound   = repository.ErrProductNotFound
	ErrOrderNotFound     = repository.ErrOrderNotFound
	ErrOrderItemNotFound = repository.ErrOrderItemNotFound
)

type StockRepository interface {
	InsertOrderItem(ctx context.Context, item domain.OrderItem, price *float64) (domain.OrderItem, error)
	UpdateOrderItem(ctx context.Context, itemID uint, changes domain.OrderItemChanges) (domain.OrderItem, error)
	DeleteOrderItem(ctx context.Context, itemID uint) error
	DeleteOrder(ctx context.Context, orderID uint) error
	AdjustStock(ctx context.Context, productID uint, delta float64, reason, reference, note string) (domain.Product, error)
	FindLogByProductID(ctx context.Context, productID uint) ([]domain.InventoryLogEntry, error)
	FindAllLog(ctx context.Context) ([]domain.InventoryLogEntry, error)
}

type ProductReader interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
}

// StockService is the stock ledger: order-item lifecycle driving product
// quantities, manual adjustments, and the append-only audit trail.
type StockService struct {
	repo     StockRepository
	products ProductReader
	notifier Notifier
}

func NewStockService(repo StockRepository, products ProductReader, notifier Notifier) *StockService {
	return &StockService{
		repo:     repo,
		products: products,
		notifier: notifier,
	}
}

// AddOrderItem appends a line to an order. A nil price copies the product's
// current selling price.
func (s *StockService) AddOrderItem(ctx context.Context, orderID, productID uint, quantity float64, price *float64, note string) (domain.OrderItem, error) {
	if quantity <= 0 {
		return domain.OrderItem{}, domain.NewValidationError("quantity", "must be positive, got %v", quantity)
	}
	if price != nil && *price < 0 {
		return domain.OrderItem{}, domain.NewValidationError("price", "must not be negative, got %v", *price)
	}

	item := domain.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		Note:      note,
	}

	created, err := s.repo.InsertOrderItem(ctx, item, price)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("s.repo.InsertOrderItem -> %w", err)
	}

	s.alertIfLowStock(ctx, productID)

	return created, nil
}

func (s *StockService) UpdateOrderItem(ctx context.Context, itemID uint, changes domain.OrderItemChanges) (domain.OrderItem, error) {
	if changes.Quantity != nil && *changes.Quantity <= 0 {
		return domain.OrderItem{}, domain.NewValidationError("quantity", "must be positive, got %v", *changes.Quantity)
	}
	if changes.Price != nil && *changes.Price < 0 {
		return domain.OrderItem{}, domain.NewValidationError("price", "must not be negative, got %v", *changes.Price)
	}

	updated, err := s.repo.UpdateOrderItem(ctx, itemID, changes)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("s.repo.UpdateOrderItem -> %w", err)
	}

	s.alertIfLowStock(ctx, updated.ProductID)

	return updated, nil
}

// RemoveOrderItem deletes a line and restores the quantity it had reserved.
func (s *StockService) RemoveOrderItem(ctx context.Context, itemID uint) error {
	if err := s.repo.DeleteOrderItem(ctx, itemID); err != nil {
		return fmt.Errorf("s.repo.DeleteOrderItem -> %w", err)
	}

	return nil
}

// RemoveOrder deletes an order with all its lines, restoring every reserved
// quantity.
func (s *StockService) RemoveOrder(ctx context.Context, orderID uint) error {
	if err := s.repo.DeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("s.repo.DeleteOrder -> %w", err)
	}

	return nil
}

// AdjustStock records a manual correction: receiving goods, write-offs,
// stocktake. The generated reference ties the ledger row to this adjustment.
func (s *StockService) AdjustStock(ctx context.Context, productID uint, delta float64, reason, note string) (domain.Product, error) {
	if delta == 0 {
		return domain.Product{}, domain.NewValidationError("delta", "must not be zero")
	}
	if reason == "" {
		return domain.Product{}, domain.NewValidationError("reason", "is required")
	}

	reference := "adj-" + uuid.NewString()

	adjusted, err := s.repo.AdjustStock(ctx, productID, delta, reason, reference, note)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.AdjustStock -> %w", err)
	}

	if adjusted.BelowMinStock() {
		s.notify(ctx, "warn", fmt.Sprintf("product %q is below minimum stock (%v < %v)",
			adjusted.Name, adjusted.Quantity, adjusted.MinStock))
	}

	return adjusted, nil
}

func (s *StockService) GetProductLog(ctx context.Context, productID uint) ([]domain.InventoryLogEntry, error) {
	entries, err := s.repo.FindLogByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindLogByProductID -> %w", err)
	}

	return entries, nil
}

func (s *StockService) GetLog(ctx context.Context) ([]domain.InventoryLogEntry, error) {
	entries, err := s.repo.FindAllLog(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllLog -> %w", err)
	}

	return entries, nil
}

func (s *StockService) alertIfLowStock(ctx context.Context, productID uint) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return
	}

	if product.BelowMinStock() {
		s.notify(ctx, "warn", fmt.Sprintf("product %q is below minimum stock (%v < %v)",
			product.Name, product.Quantity, product.MinStock))
	}
}

func (s *StockService) notify(ctx context.Context, level, message string) {
	if s.notifier == nil {
		return
	}

	s.notifier.Notify(ctx, level, message)
}
