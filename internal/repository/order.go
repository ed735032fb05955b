package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/repository/dao"
)

type OrderDAO interface {
	Insert(ctx context.Context, order dao.Order) (dao.Order, error)
	FindByID(ctx context.Context, id uint) (dao.Order, error)
	FindAll(ctx context.Context) ([]dao.Order, error)
	FindByStatus(ctx context.Context, status string) ([]dao.Order, error)
	FindByTableNumber(ctx context.Context, number int) ([]dao.Order, error)
	Update(ctx context.Context, order dao.Order) (dao.Order, error)
	FindItemsByOrderID(ctx context.Context, orderID uint) ([]dao.OrderItem, error)
}

type OrderRepository struct {
	dao         OrderDAO
	productRepo *ProductRepository
}

func NewOrderRepository(dao OrderDAO, productRepo *ProductRepository) *OrderRepository {
	return &OrderRepository{
		dao:         dao,
		productRepo: productRepo,
	}
}

func (r *OrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	created, err := r.dao.Insert(ctx, orderDomainToDao(order))
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return orderDaoToDomain(created), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return orderDaoToDomain(found), nil
}

// FindByIDWithItems loads the order, its lines, and each line's product as
// an explicit read-then-compose step.
func (r *OrderRepository) FindByIDWithItems(ctx context.Context, id uint) (domain.Order, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	items, err := r.dao.FindItemsByOrderID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindItemsByOrderID -> %w", err)
	}

	order := orderDaoToDomain(found)
	order.Items = make([]domain.OrderItem, len(items))
	for i, item := range items {
		resolved := orderItemDaoToDomain(item)

		product, err := r.productRepo.FindByID(ctx, item.ProductID)
		if err == nil {
			resolved.Product = &product
		}

		order.Items[i] = resolved
	}

	return order, nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return ordersDaoToDomain(found), nil
}

func (r *OrderRepository) FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	found, err := r.dao.FindByStatus(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStatus -> %w", err)
	}

	return ordersDaoToDomain(found), nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) (domain.Order, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	found.Status = string(status)
	updated, err := r.dao.Update(ctx, found)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return orderDaoToDomain(updated), nil
}

func orderDomainToDao(o domain.Order) dao.Order {
	return dao.Order{
		ID:          o.ID,
		TableNumber: o.TableNumber,
		Status:      string(o.Status),
		Date:        o.Date,
		Note:        o.Note,
		TotalHT:     o.TotalHT,
		TVAAmount:   o.TVAAmount,
		TotalTTC:    o.TotalTTC,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func orderDaoToDomain(o dao.Order) domain.Order {
	return domain.Order{
		ID:          o.ID,
		TableNumber: o.TableNumber,
		Status:      domain.OrderStatus(o.Status),
		Date:        o.Date,
		Note:        o.Note,
		TotalHT:     o.TotalHT,
		TVAAmount:   o.TVAAmount,
		TotalTTC:    o.TotalTTC,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func ordersDaoToDomain(orders []dao.Order) []domain.Order {
	result := make([]domain.Order, len(orders))
	for i, o := range orders {
		result[i] = orderDaoToDomain(o)
	}

	return result
}
