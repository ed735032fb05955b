package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/resto-ops/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	FindByIDWithItems(ctx context.Context, id uint) (domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) (domain.Order, error)
}

type OrderService struct {
	repo     OrderRepository
	notifier Notifier
}

func NewOrderService(repo OrderRepository, notifier Notifier) *OrderService {
	return &OrderService{
		repo:     repo,
		notifier: notifier,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.TableNumber <= 0 {
		return domain.Order{}, domain.NewValidationError("table_number", "must be positive, got %v", order.TableNumber)
	}

	if order.Status == "" {
		order.Status = domain.OrderPending
	}
	if !domain.ValidOrderStatus(order.Status) {
		return domain.Order{}, domain.NewValidationError("status", "unknown status %q", order.Status)
	}
	if order.Date.IsZero() {
		order.Date = time.Now()
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (domain.Order, error) {
	order, err := s.repo.FindByIDWithItems(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.FindByIDWithItems -> %w", err)
	}

	return order, nil
}

func (s *OrderService) GetOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return orders, nil
}

func (s *OrderService) GetOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.NewValidationError("status", "unknown status %q", status)
	}

	orders, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByStatus -> %w", err)
	}

	return orders, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status domain.OrderStatus) (domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return domain.Order{}, domain.NewValidationError("status", "unknown status %q", status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, "info", fmt.Sprintf("order %v moved to %v", updated.ID, updated.Status))
	}

	return updated, nil
}
