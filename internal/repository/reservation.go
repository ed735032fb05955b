package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/repository/dao"
	"github.com/vietanh2810/resto-ops/internal/store"
)

var (
	ErrReservationNotFound = dao.ErrReservationNotFound
	ErrTableNotFound       = dao.ErrTableNotFound
	ErrTableNumberExists   = dao.ErrTableNumberExists
)

// ReservationRepository pairs every reservation write with its table-status
// side effect in one transaction over the reservations and tables
// collections.
type ReservationRepository struct {
	store *store.Store
}

func NewReservationRepository(s *store.Store) *ReservationRepository {
	return &ReservationRepository{
		store: s,
	}
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uint) (domain.Reservation, error) {
	found, err := dao.NewReservationDAO(r.store).FindByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("reservations.FindByID -> %w", err)
	}

	return reservationDaoToDomain(found), nil
}

func (r *ReservationRepository) FindAll(ctx context.Context) ([]domain.Reservation, error) {
	found, err := dao.NewReservationDAO(r.store).FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reservations.FindAll -> %w", err)
	}

	return reservationsDaoToDomain(found), nil
}

func (r *ReservationRepository) FindByDate(ctx context.Context, date string) ([]domain.Reservation, error) {
	found, err := dao.NewReservationDAO(r.store).FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("reservations.FindByDate -> %w", err)
	}

	return reservationsDaoToDomain(found), nil
}

// FindActiveByTableAndDate returns the reservations that block the table's
// time windows on that date: status pending, confirmed or seated.
func (r *ReservationRepository) FindActiveByTableAndDate(ctx context.Context, tableID uint, date string) ([]domain.Reservation, error) {
	found, err := dao.NewReservationDAO(r.store).FindByTableID(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("reservations.FindByTableID -> %w", err)
	}

	var active []domain.Reservation
	for _, res := range found {
		if res.Date != date {
			continue
		}
		if !domain.ReservationStatus(res.Status).Active() {
			continue
		}
		active = append(active, reservationDaoToDomain(res))
	}

	return active, nil
}

// Create inserts the reservation and, when tableStatus is non-nil, moves the
// table in the same transaction.
func (r *ReservationRepository) Create(ctx context.Context, reservation domain.Reservation, tableStatus *domain.TableStatus) (domain.Reservation, error) {
	var created dao.Reservation

	err := r.store.Tx(ctx, func(tx *store.Store) error {
		var err error
		created, err = dao.NewReservationDAO(tx).Insert(ctx, reservationDomainToDao(reservation))
		if err != nil {
			return fmt.Errorf("reservations.Insert -> %w", err)
		}

		return r.moveTable(ctx, tx, reservation.TableID, tableStatus)
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	return reservationDaoToDomain(created), nil
}

// Update saves the reservation and, when tableStatus is non-nil, moves the
// table in the same transaction.
func (r *ReservationRepository) Update(ctx context.Context, reservation domain.Reservation, tableStatus *domain.TableStatus) (domain.Reservation, error) {
	var updated dao.Reservation

	err := r.store.Tx(ctx, func(tx *store.Store) error {
		var err error
		updated, err = dao.NewReservationDAO(tx).Update(ctx, reservationDomainToDao(reservation))
		if err != nil {
			return fmt.Errorf("reservations.Update -> %w", err)
		}

		return r.moveTable(ctx, tx, reservation.TableID, tableStatus)
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	return reservationDaoToDomain(updated), nil
}

func (r *ReservationRepository) moveTable(ctx context.Context, tx *store.Store, tableID uint, status *domain.TableStatus) error {
	if status == nil {
		return nil
	}

	tables := dao.NewTableDAO(tx)

	table, err := tables.FindByID(ctx, tableID)
	if err != nil {
		return fmt.Errorf("tables.FindByID -> %w", err)
	}

	table.Status = string(*status)
	if _, err = tables.Update(ctx, table); err != nil {
		return fmt.Errorf("tables.Update -> %w", err)
	}

	return nil
}

func reservationDomainToDao(res domain.Reservation) dao.Reservation {
	return dao.Reservation{
		ID:        res.ID,
		Date:      res.Date,
		Time:      res.Time,
		Name:      res.Name,
		Covers:    res.Covers,
		TableID:   res.TableID,
		Status:    string(res.Status),
		Note:      res.Note,
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}
}

func reservationDaoToDomain(res dao.Reservation) domain.Reservation {
	return domain.Reservation{
		ID:        res.ID,
		Date:      res.Date,
		Time:      res.Time,
		Name:      res.Name,
		Covers:    res.Covers,
		TableID:   res.TableID,
		Status:    domain.ReservationStatus(res.Status),
		Note:      res.Note,
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}
}

func reservationsDaoToDomain(reservations []dao.Reservation) []domain.Reservation {
	result := make([]domain.Reservation, len(reservations))
	for i, res := range reservations {
		result[i] = reservationDaoToDomain(res)
	}

	return result
}
