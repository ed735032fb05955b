package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/repository/dao"
)

type TableDAO interface {
	Insert(ctx context.Context, table dao.Table) (dao.Table, error)
	FindByID(ctx context.Context, id uint) (dao.Table, error)
	FindAll(ctx context.Context) ([]dao.Table, error)
	FindByStatus(ctx context.Context, status string) ([]dao.Table, error)
	Update(ctx context.Context, table dao.Table) (dao.Table, error)
}

type TableRepository struct {
	dao TableDAO
}

func NewTableRepository(dao TableDAO) *TableRepository {
	return &TableRepository{
		dao: dao,
	}
}

func (r *TableRepository) Create(ctx context.Context, table domain.Table) (domain.Table, error) {
	created, err := r.dao.Insert(ctx, tableDomainToDao(table))
	if err != nil {
		return domain.Table{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return tableDaoToDomain(created), nil
}

func (r *TableRepository) FindByID(ctx context.Context, id uint) (domain.Table, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Table{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return tableDaoToDomain(found), nil
}

func (r *TableRepository) FindAll(ctx context.Context) ([]domain.Table, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return tablesDaoToDomain(found), nil
}

func (r *TableRepository) Update(ctx context.Context, table domain.Table) (domain.Table, error) {
	updated, err := r.dao.Update(ctx, tableDomainToDao(table))
	if err != nil {
		return domain.Table{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return tableDaoToDomain(updated), nil
}

// SetStatus is the direct operator action on a table: seating walk-ins,
// clearing, taking a table out for maintenance.
func (r *TableRepository) SetStatus(ctx context.Context, id uint, status domain.TableStatus) (domain.Table, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Table{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	found.Status = string(status)
	updated, err := r.dao.Update(ctx, found)
	if err != nil {
		return domain.Table{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return tableDaoToDomain(updated), nil
}

func tableDomainToDao(t domain.Table) dao.Table {
	return dao.Table{
		ID:        t.ID,
		Number:    t.Number,
		Capacity:  t.Capacity,
		Status:    string(t.Status),
		Shape:     t.Shape,
		PosX:      t.PosX,
		PosY:      t.PosY,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func tableDaoToDomain(t dao.Table) domain.Table {
	return domain.Table{
		ID:        t.ID,
		Number:    t.Number,
		Capacity:  t.Capacity,
		Status:    domain.TableStatus(t.Status),
		Shape:     t.Shape,
		PosX:      t.PosX,
		PosY:      t.PosY,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func tablesDaoToDomain(tables []dao.Table) []domain.Table {
	result := make([]domain.Table, len(tables))
	for i, t := range tables {
		result[i] = tableDaoToDomain(t)
	}

	return result
}
