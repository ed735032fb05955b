package dao

import (
	"context"
	"errors"
	"time"

	"github.com/vietanh2810/resto-ops/internal/store"
)

var ErrReservationNotFound = errors.New("reservation not found")

type Reservation struct {
	ID uint `gorm:"primaryKey"`

	Date    string `gorm:"not null;index"` // YYYY-MM-DD
	Time    string `gorm:"not null"`       // HH:MM
	Name    string `gorm:"not null;index"`
	Covers  int    `gorm:"not null"`
	TableID uint   `gorm:"not null;index"`
	Status  string `gorm:"not null;index"`
	Note    string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Reservation) TableName() string {
	return "reservations"
}

type ReservationDAO struct {
	store *store.Store
}

func NewReservationDAO(s *store.Store) *ReservationDAO {
	return &ReservationDAO{
		store: s,
	}
}

func (d *ReservationDAO) Insert(ctx context.Context, reservation Reservation) (Reservation, error) {
	if err := store.Add(ctx, d.store, &reservation); err != nil {
		return Reservation{}, err
	}

	return reservation, nil
}

func (d *ReservationDAO) FindByID(ctx context.Context, id uint) (Reservation, error) {
	reservation, found, err := store.Get[Reservation](ctx, d.store, id)
	if err != nil {
		return Reservation{}, err
	}
	if !found {
		return Reservation{}, ErrReservationNotFound
	}

	return reservation, nil
}

func (d *ReservationDAO) FindAll(ctx context.Context) ([]Reservation, error) {
	return store.GetAll[Reservation](ctx, d.store)
}

func (d *ReservationDAO) FindByDate(ctx context.Context, date string) ([]Reservation, error) {
	return store.GetByIndex[Reservation](ctx, d.store, "date", date)
}

func (d *ReservationDAO) FindByTableID(ctx context.Context, tableID uint) ([]Reservation, error) {
	return store.GetByIndex[Reservation](ctx, d.store, "table_id", tableID)
}

func (d *ReservationDAO) Update(ctx context.Context, reservation Reservation) (Reservation, error) {
	if err := store.Update(ctx, d.store, &reservation); err != nil {
		return Reservation{}, err
	}

	return reservation, nil
}

func (d *ReservationDAO) Delete(ctx context.Context, id uint) error {
	return store.Delete[Reservation](ctx, d.store, id)
}
