package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/repository"
)

var ErrTableNumberExists = repository.ErrTableNumberExists

type TableRepository interface {
	Create(ctx context.Context, table domain.Table) (domain.Table, error)
	FindByID(ctx context.Context, id uint) (domain.Table, error)
	FindAll(ctx context.Context) ([]domain.Table, error)
	Update(ctx context.Context, table domain.Table) (domain.Table, error)
	SetStatus(ctx context.Context, id uint, status domain.TableStatus) (domain.Table, error)
}

// TableService covers direct operator actions on tables: floor layout
// edits, seating walk-ins, clearing, maintenance.
type TableService struct {
	repo TableRepository
}

func NewTableService(repo TableRepository) *TableService {
	return &TableService{
		repo: repo,
	}
}

func (s *TableService) CreateTable(ctx context.Context, table domain.Table) (domain.Table, error) {
	if table.Number <= 0 {
		return domain.Table{}, domain.NewValidationError("number", "must be positive, got %v", table.Number)
	}
	if table.Capacity <= 0 {
		return domain.Table{}, domain.NewValidationError("capacity", "must be positive, got %v", table.Capacity)
	}

	if table.Status == "" {
		table.Status = domain.TableAvailable
	}
	if !domain.ValidTableStatus(table.Status) {
		return domain.Table{}, domain.NewValidationError("status", "unknown status %q", table.Status)
	}

	created, err := s.repo.Create(ctx, table)
	if err != nil {
		return domain.Table{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *TableService) GetTable(ctx context.Context, id uint) (domain.Table, error) {
	table, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Table{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return table, nil
}

func (s *TableService) GetTables(ctx context.Context) ([]domain.Table, error) {
	tables, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return tables, nil
}

func (s *TableService) SetTableStatus(ctx context.Context, id uint, status domain.TableStatus) (domain.Table, error) {
	if !domain.ValidTableStatus(status) {
		return domain.Table{}, domain.NewValidationError("status", "unknown status %q", status)
	}

	updated, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		return domain.Table{}, fmt.Errorf("s.repo.SetStatus -> %w", err)
	}

	return updated, nil
}
