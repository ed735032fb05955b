package dao

import (
	"context"
	"errors"
	"time"

	"github.com/vietanh2810/resto-ops/internal/store"
)

var (
	ErrTableNotFound     = errors.New("table not found")
	ErrTableNumberExists = errors.New("table number already exists")
)

type Table struct {
	ID uint `gorm:"primaryKey"`

	Number   int    `gorm:"uniqueIndex;not null"`
	Capacity int    `gorm:"not null;index"`
	Status   string `gorm:"not null;index"`
	Shape    string
	PosX     int
	PosY     int

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Table) TableName() string {
	return "tables"
}

type TableDAO struct {
	store *store.Store
}

func NewTableDAO(s *store.Store) *TableDAO {
	return &TableDAO{
		store: s,
	}
}

func (d *TableDAO) Insert(ctx context.Context, table Table) (Table, error) {
	if err := store.Add(ctx, d.store, &table); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return Table{}, ErrTableNumberExists
		}

		return Table{}, err
	}

	return table, nil
}

func (d *TableDAO) FindByID(ctx context.Context, id uint) (Table, error) {
	table, found, err := store.Get[Table](ctx, d.store, id)
	if err != nil {
		return Table{}, err
	}
	if !found {
		return Table{}, ErrTableNotFound
	}

	return table, nil
}

func (d *TableDAO) FindAll(ctx context.Context) ([]Table, error) {
	return store.GetAll[Table](ctx, d.store)
}

func (d *TableDAO) FindByStatus(ctx context.Context, status string) ([]Table, error) {
	return store.GetByIndex[Table](ctx, d.store, "status", status)
}

func (d *TableDAO) Update(ctx context.Context, table Table) (Table, error) {
	if err := store.Update(ctx, d.store, &table); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return Table{}, ErrTableNumberExists
		}

		return Table{}, err
	}

	return table, nil
}
