package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/repository"
)

var (
	ErrReservationNotFound = repository.ErrReservationNotFound
	ErrTableNotFound       = repository.ErrTableNotFound
)

// DefaultServiceDuration is the fixed length of one seating, used to detect
// conflicting reservations.
const DefaultServiceDuration = 120

var timePattern = regexp2.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`, regexp2.None)

type ReservationRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Reservation, error)
	FindAll(ctx context.Context) ([]domain.Reservation, error)
	FindByDate(ctx context.Context, date string) ([]domain.Reservation, error)
	FindActiveByTableAndDate(ctx context.Context, tableID uint, date string) ([]domain.Reservation, error)
	Create(ctx context.Context, reservation domain.Reservation, tableStatus *domain.TableStatus) (domain.Reservation, error)
	Update(ctx context.Context, reservation domain.Reservation, tableStatus *domain.TableStatus) (domain.Reservation, error)
}

type TableReader interface {
	FindByID(ctx context.Context, id uint) (domain.Table, error)
	FindAll(ctx context.Context) ([]domain.Table, error)
}

// tableEffect is what a reservation status transition does to its table.
// Reserve only takes hold when the reservation is near-term (same day,
// starting within one service window of now).
type tableEffect int

const (
	effectNone tableEffect = iota
	effectRelease
	effectReserve
	effectOccupy
)

// reservationTransitions enumerates every legal status transition and its
// table side effect. A pair absent from this map is an illegal transition.
var reservationTransitions = map[domain.ReservationStatus]map[domain.ReservationStatus]tableEffect{
	domain.ReservationPending: {
		domain.ReservationConfirmed: effectReserve,
		domain.ReservationSeated:    effectOccupy,
		domain.ReservationCancelled: effectRelease,
		domain.ReservationNoShow:    effectRelease,
	},
	domain.ReservationConfirmed: {
		domain.ReservationPending:   effectReserve,
		domain.ReservationSeated:    effectOccupy,
		domain.ReservationCancelled: effectRelease,
		domain.ReservationNoShow:    effectRelease,
	},
	domain.ReservationSeated: {
		domain.ReservationPending:   effectReserve,
		domain.ReservationConfirmed: effectReserve,
		domain.ReservationCompleted: effectRelease,
		domain.ReservationCancelled: effectRelease,
		domain.ReservationNoShow:    effectRelease,
	},
	domain.ReservationCompleted: {
		domain.ReservationSeated: effectOccupy,
	},
}

// ReservationService is the reservation scheduler: time-window conflict
// detection over the reservations collection and the table-status state
// machine driven by reservation transitions.
type ReservationService struct {
	repo     ReservationRepository
	tables   TableReader
	notifier Notifier

	duration int
	now      func() time.Time
}

func NewReservationService(repo ReservationRepository, tables TableReader, notifier Notifier, durationMinutes int) *ReservationService {
	if durationMinutes <= 0 {
		durationMinutes = DefaultServiceDuration
	}

	return &ReservationService{
		repo:     repo,
		tables:   tables,
		notifier: notifier,
		duration: durationMinutes,
		now:      time.Now,
	}
}

func (s *ReservationService) GetReservation(ctx context.Context, id uint) (domain.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return reservation, nil
}

func (s *ReservationService) GetReservations(ctx context.Context) ([]domain.Reservation, error) {
	reservations, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return reservations, nil
}

func (s *ReservationService) GetReservationsByDate(ctx context.Context, date string) ([]domain.Reservation, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	reservations, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByDate -> %w", err)
	}

	return reservations, nil
}

// CheckAvailability reports whether the table is free for a full service
// window starting at date+time. A table under maintenance is never
// available. excludeReservationID removes one reservation from the scan,
// so an update does not conflict with itself.
func (s *ReservationService) CheckAvailability(ctx context.Context, tableID uint, date, hhmm string, excludeReservationID uint) (bool, error) {
	if err := validateDate(date); err != nil {
		return false, err
	}
	if err := validateTime(hhmm); err != nil {
		return false, err
	}

	table, err := s.tables.FindByID(ctx, tableID)
	if err != nil {
		return false, fmt.Errorf("s.tables.FindByID -> %w", err)
	}

	if table.Status == domain.TableMaintenance {
		return false, nil
	}

	candidate, err := domain.TimeToMinutes(hhmm)
	if err != nil {
		return false, domain.NewValidationError("time", "%v", err)
	}

	active, err := s.repo.FindActiveByTableAndDate(ctx, tableID, date)
	if err != nil {
		return false, fmt.Errorf("s.repo.FindActiveByTableAndDate -> %w", err)
	}

	for _, existing := range active {
		if existing.ID == excludeReservationID {
			continue
		}

		start, err := existing.StartMinutes()
		if err != nil {
			continue
		}

		// Half-open [start, start+duration) interval overlap, symmetric.
		if candidate < start+s.duration && start < candidate+s.duration {
			return false, nil
		}
	}

	return true, nil
}

// FindAvailableTables returns the free tables that seat the party, smallest
// sufficient table first.
func (s *ReservationService) FindAvailableTables(ctx context.Context, date, hhmm string, covers int) ([]domain.Table, error) {
	if covers <= 0 {
		return nil, domain.NewValidationError("covers", "must be positive, got %v", covers)
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if err := validateTime(hhmm); err != nil {
		return nil, err
	}

	tables, err := s.tables.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.tables.FindAll -> %w", err)
	}

	var available []domain.Table
	for _, table := range tables {
		if table.Capacity < covers {
			continue
		}

		free, err := s.CheckAvailability(ctx, table.ID, date, hhmm, 0)
		if err != nil {
			return nil, err
		}
		if free {
			available = append(available, table)
		}
	}

	sort.Slice(available, func(i, j int) bool {
		if available[i].Capacity != available[j].Capacity {
			return available[i].Capacity < available[j].Capacity
		}
		return available[i].Number < available[j].Number
	})

	return available, nil
}

func (s *ReservationService) CreateReservation(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error) {
	if reservation.Status == "" {
		reservation.Status = domain.ReservationPending
	}

	if err := s.validateReservation(reservation); err != nil {
		return domain.Reservation{}, err
	}
	if !reservation.Status.Active() {
		return domain.Reservation{}, domain.NewValidationError("status",
			"a new reservation must be pending, confirmed or seated, got %v", reservation.Status)
	}

	free, err := s.CheckAvailability(ctx, reservation.TableID, reservation.Date, reservation.Time, 0)
	if err != nil {
		return domain.Reservation{}, err
	}
	if !free {
		return domain.Reservation{}, &domain.ConflictError{
			Entity: "reservation",
			Reason: fmt.Sprintf("table %v is not available on %v at %v", reservation.TableID, reservation.Date, reservation.Time),
		}
	}

	effect := effectReserve
	if reservation.Status == domain.ReservationSeated {
		effect = effectOccupy
	}

	created, err := s.repo.Create(ctx, reservation, s.tableStatusFor(effect, reservation))
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.notify(ctx, "info", fmt.Sprintf("reservation for %v (%v covers) created on %v at %v",
		created.Name, created.Covers, created.Date, created.Time))

	return created, nil
}

// UpdateReservation applies changes to an existing reservation. Moving it in
// table, date or time re-runs the availability check; a status change walks
// the transition table and moves the table accordingly, in one transaction
// with the reservation write.
func (s *ReservationService) UpdateReservation(ctx context.Context, updated domain.Reservation) (domain.Reservation, error) {
	existing, err := s.repo.FindByID(ctx, updated.ID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = s.validateReservation(updated); err != nil {
		return domain.Reservation{}, err
	}

	moved := updated.TableID != existing.TableID ||
		updated.Date != existing.Date ||
		updated.Time != existing.Time
	if moved && updated.Status.Active() {
		free, err := s.CheckAvailability(ctx, updated.TableID, updated.Date, updated.Time, updated.ID)
		if err != nil {
			return domain.Reservation{}, err
		}
		if !free {
			return domain.Reservation{}, &domain.ConflictError{
				Entity: "reservation",
				Reason: fmt.Sprintf("table %v is not available on %v at %v", updated.TableID, updated.Date, updated.Time),
			}
		}
	}

	var tableStatus *domain.TableStatus
	if updated.Status != existing.Status {
		effect, err := s.transitionEffect(existing.Status, updated.Status)
		if err != nil {
			return domain.Reservation{}, err
		}
		tableStatus = s.tableStatusFor(effect, updated)
	}

	updated.CreatedAt = existing.CreatedAt

	saved, err := s.repo.Update(ctx, updated, tableStatus)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return saved, nil
}

// UpdateStatus drives just the status machine of one reservation.
func (s *ReservationService) UpdateStatus(ctx context.Context, id uint, status domain.ReservationStatus) (domain.Reservation, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	existing.Status = status

	return s.UpdateReservation(ctx, existing)
}

func (s *ReservationService) transitionEffect(from, to domain.ReservationStatus) (tableEffect, error) {
	if !domain.ValidReservationStatus(to) {
		return effectNone, domain.NewValidationError("status", "unknown status %q", to)
	}

	allowed, ok := reservationTransitions[from]
	if !ok {
		return effectNone, &domain.ConflictError{
			Entity: "reservation",
			Reason: fmt.Sprintf("status %v is terminal", from),
		}
	}

	effect, ok := allowed[to]
	if !ok {
		return effectNone, &domain.ConflictError{
			Entity: "reservation",
			Reason: fmt.Sprintf("illegal status transition %v -> %v", from, to),
		}
	}

	return effect, nil
}

// tableStatusFor resolves an effect to the concrete table status, or nil
// when the table should not move. Reserve only applies when the reservation
// starts within one service window of now on the current day.
func (s *ReservationService) tableStatusFor(effect tableEffect, reservation domain.Reservation) *domain.TableStatus {
	switch effect {
	case effectRelease:
		status := domain.TableAvailable
		return &status
	case effectOccupy:
		status := domain.TableOccupied
		return &status
	case effectReserve:
		if !s.nearTerm(reservation) {
			return nil
		}
		status := domain.TableReserved
		return &status
	}

	return nil
}

func (s *ReservationService) nearTerm(reservation domain.Reservation) bool {
	now := s.now()
	if reservation.Date != now.Format("2006-01-02") {
		return false
	}

	start, err := reservation.StartMinutes()
	if err != nil {
		return false
	}

	until := start - (now.Hour()*60 + now.Minute())

	return until >= 0 && until <= s.duration
}

func (s *ReservationService) validateReservation(reservation domain.Reservation) error {
	if reservation.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if reservation.Covers <= 0 {
		return domain.NewValidationError("covers", "must be positive, got %v", reservation.Covers)
	}
	if reservation.TableID == 0 {
		return domain.NewValidationError("table_id", "is required")
	}
	if !domain.ValidReservationStatus(reservation.Status) {
		return domain.NewValidationError("status", "unknown status %q", reservation.Status)
	}
	if err := validateDate(reservation.Date); err != nil {
		return err
	}

	return validateTime(reservation.Time)
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return domain.NewValidationError("date", "must be YYYY-MM-DD, got %q", date)
	}

	return nil
}

func validateTime(hhmm string) error {
	ok, err := timePattern.MatchString(hhmm)
	if err != nil || !ok {
		return domain.NewValidationError("time", "must be HH:MM (24-hour), got %q", hhmm)
	}

	return nil
}

func (s *ReservationService) notify(ctx context.Context, level, message string) {
	if s.notifier == nil {
		return
	}

	s.notifier.Notify(ctx, level, message)
}
