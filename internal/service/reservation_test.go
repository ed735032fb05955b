package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/repository"
	"github.com/vietanh2810/resto-ops/internal/repository/dao"
)

// Every reservation test runs at a fixed clock: 18:00 on service day
// 2026-09-10, so near-term behavior is deterministic.
var testClock = time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC)

const (
	today    = "2026-09-10"
	tomorrow = "2026-09-11"
)

func newReservationFixture(t *testing.T, name string) (*ReservationService, *repository.TableRepository) {
	t.Helper()

	st := openOpsStore(t, name)
	repo := repository.NewReservationRepository(st)
	tableRepo := repository.NewTableRepository(dao.NewTableDAO(st))

	svc := NewReservationService(repo, tableRepo, nil, 120)
	svc.now = func() time.Time { return testClock }

	return svc, tableRepo
}

func mustCreateReservation(t *testing.T, svc *ReservationService, r domain.Reservation) domain.Reservation {
	t.Helper()

	created, err := svc.CreateReservation(context.Background(), r)
	require.NoError(t, err)

	return created
}

func TestCheckAvailabilityOverlapWindow(t *testing.T) {
	svc, _ := newReservationFixture(t, "resa_overlap")
	ctx := context.Background()

	mustCreateReservation(t, svc, domain.Reservation{
		Date:    today,
		Time:    "19:00",
		Name:    "Martin",
		Covers:  2,
		TableID: 3,
		Status:  domain.ReservationConfirmed,
	})

	cases := []struct {
		time string
		free bool
	}{
		{"19:00", false}, // same slot
		{"20:00", false}, // starts inside the window
		{"17:30", false}, // would still be running at 19:00
		{"21:00", true},  // previous party just left
		{"16:55", true},  // over before 19:00
	}
	for _, tc := range cases {
		free, err := svc.CheckAvailability(ctx, 3, today, tc.time, 0)
		require.NoError(t, err)
		assert.Equal(t, tc.free, free, "slot %v", tc.time)
	}

	// A different table is unaffected.
	free, err := svc.CheckAvailability(ctx, 4, today, "19:00", 0)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestCheckAvailabilityMaintenance(t *testing.T) {
	svc, tables := newReservationFixture(t, "resa_maintenance")
	ctx := context.Background()

	_, err := tables.SetStatus(ctx, 4, domain.TableMaintenance)
	require.NoError(t, err)

	free, err := svc.CheckAvailability(ctx, 4, today, "19:00", 0)
	require.NoError(t, err)
	assert.False(t, free)
}

func TestCheckAvailabilityValidation(t *testing.T) {
	svc, _ := newReservationFixture(t, "resa_validation")
	ctx := context.Background()

	var validationErr *domain.ValidationError

	_, err := svc.CheckAvailability(ctx, 1, "10/09/2026", "19:00", 0)
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.CheckAvailability(ctx, 1, today, "7pm", 0)
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.CheckAvailability(ctx, 1, today, "25:00", 0)
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateReservationDefaultsAndTableEffect(t *testing.T) {
	svc, tables := newReservationFixture(t, "resa_create")
	ctx := context.Background()

	// Starts within one service window of the clock, so the table is marked.
	created := mustCreateReservation(t, svc, domain.Reservation{
		Date:    today,
		Time:    "19:00",
		Name:    "Dubois",
		Covers:  4,
		TableID: 3,
	})
	assert.Equal(t, domain.ReservationPending, created.Status)

	table, err := tables.FindByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.TableReserved, table.Status)

	// A booking for tomorrow leaves its table alone.
	mustCreateReservation(t, svc, domain.Reservation{
		Date:    tomorrow,
		Time:    "19:00",
		Name:    "Roux",
		Covers:  4,
		TableID: 4,
	})

	table, err = tables.FindByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, domain.TableAvailable, table.Status)
}

func TestCreateReservationConflict(t *testing.T) {
	svc, _ := newReservationFixture(t, "resa_conflict")

	mustCreateReservation(t, svc, domain.Reservation{
		Date:    tomorrow,
		Time:    "20:00",
		Name:    "Bernard",
		Covers:  2,
		TableID: 5,
	})

	_, err := svc.CreateReservation(context.Background(), domain.Reservation{
		Date:    tomorrow,
		Time:    "21:00",
		Name:    "Petit",
		Covers:  2,
		TableID: 5,
	})
	require.Error(t, err)

	var conflictErr *domain.ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestCreateReservationRejectsTerminalStatus(t *testing.T) {
	svc, _ := newReservationFixture(t, "resa_terminal_create")

	_, err := svc.CreateReservation(context.Background(), domain.Reservation{
		Date:    tomorrow,
		Time:    "20:00",
		Name:    "Moreau",
		Covers:  2,
		TableID: 1,
		Status:  domain.ReservationCancelled,
	})
	require.Error(t, err)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestFindAvailableTables(t *testing.T) {
	svc, _ := newReservationFixture(t, "resa_find_tables")
	ctx := context.Background()

	// The seeded layout has two 6-seaters (numbers 6 and 7) and one 8-seater.
	available, err := svc.FindAvailableTables(ctx, tomorrow, "20:00", 5)
	require.NoError(t, err)
	require.Len(t, available, 3)
	assert.Equal(t, 6, available[0].Number)
	assert.Equal(t, 7, available[1].Number)
	assert.Equal(t, 8, available[2].Number)

	mustCreateReservation(t, svc, domain.Reservation{
		Date:    tomorrow,
		Time:    "20:00",
		Name:    "Garnier",
		Covers:  5,
		TableID: available[0].ID,
	})

	available, err = svc.FindAvailableTables(ctx, tomorrow, "20:00", 5)
	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, 7, available[0].Number)
	assert.Equal(t, 8, available[1].Number)
}

func TestStatusTransitionsDriveTable(t *testing.T) {
	svc, tables := newReservationFixture(t, "resa_transitions")
	ctx := context.Background()

	created := mustCreateReservation(t, svc, domain.Reservation{
		Date:    today,
		Time:    "19:00",
		Name:    "Lefevre",
		Covers:  4,
		TableID: 3,
	})

	_, err := svc.UpdateStatus(ctx, created.ID, domain.ReservationSeated)
	require.NoError(t, err)

	table, err := tables.FindByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.TableOccupied, table.Status)

	_, err = svc.UpdateStatus(ctx, created.ID, domain.ReservationCompleted)
	require.NoError(t, err)

	table, err = tables.FindByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.TableAvailable, table.Status)
}

func TestIllegalStatusTransitions(t *testing.T) {
	svc, _ := newReservationFixture(t, "resa_illegal")
	ctx := context.Background()

	created := mustCreateReservation(t, svc, domain.Reservation{
		Date:    tomorrow,
		Time:    "19:00",
		Name:    "Fontaine",
		Covers:  2,
		TableID: 1,
	})

	var conflictErr *domain.ConflictError

	// pending cannot jump straight to completed.
	_, err := svc.UpdateStatus(ctx, created.ID, domain.ReservationCompleted)
	assert.ErrorAs(t, err, &conflictErr)

	// A cancelled reservation is terminal.
	_, err = svc.UpdateStatus(ctx, created.ID, domain.ReservationCancelled)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, created.ID, domain.ReservationConfirmed)
	assert.ErrorAs(t, err, &conflictErr)
}

func TestCancellingFreesTheSlot(t *testing.T) {
	svc, _ := newReservationFixture(t, "resa_cancel_frees")
	ctx := context.Background()

	created := mustCreateReservation(t, svc, domain.Reservation{
		Date:    tomorrow,
		Time:    "20:00",
		Name:    "Blanc",
		Covers:  2,
		TableID: 2,
	})

	free, err := svc.CheckAvailability(ctx, 2, tomorrow, "20:30", 0)
	require.NoError(t, err)
	require.False(t, free)

	_, err = svc.UpdateStatus(ctx, created.ID, domain.ReservationCancelled)
	require.NoError(t, err)

	free, err = svc.CheckAvailability(ctx, 2, tomorrow, "20:30", 0)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestUpdateReservationMoveChecksAvailability(t *testing.T) {
	svc, _ := newReservationFixture(t, "resa_move")
	ctx := context.Background()

	blocker := mustCreateReservation(t, svc, domain.Reservation{
		Date:    tomorrow,
		Time:    "20:00",
		Name:    "Henry",
		Covers:  2,
		TableID: 1,
	})
	moving := mustCreateReservation(t, svc, domain.Reservation{
		Date:    tomorrow,
		Time:    "20:00",
		Name:    "Girard",
		Covers:  2,
		TableID: 2,
	})

	// Moving onto the blocked table conflicts.
	moving.TableID = blocker.TableID
	_, err := svc.UpdateReservation(ctx, moving)
	var conflictErr *domain.ConflictError
	require.ErrorAs(t, err, &conflictErr)

	// Re-saving in place does not conflict with itself.
	moving.TableID = 2
	moving.Covers = 3
	saved, err := svc.UpdateReservation(ctx, moving)
	require.NoError(t, err)
	assert.Equal(t, 3, saved.Covers)
}

func TestUpdateReservationKeepsCreatedAt(t *testing.T) {
	svc, _ := newReservationFixture(t, "resa_created_at")
	ctx := context.Background()

	created := mustCreateReservation(t, svc, domain.Reservation{
		Date:    tomorrow,
		Time:    "19:30",
		Name:    "Blanc",
		Covers:  2,
		TableID: 5,
	})
	require.False(t, created.CreatedAt.IsZero())

	// Edit payloads built from request bodies carry no creation stamp.
	edit := created
	edit.CreatedAt = time.Time{}
	edit.Covers = 4
	_, err := svc.UpdateReservation(ctx, edit)
	require.NoError(t, err)

	reloaded, err := svc.GetReservation(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, reloaded.CreatedAt)
}

func TestUpdateStatusUnknownReservation(t *testing.T) {
	svc, _ := newReservationFixture(t, "resa_unknown")

	_, err := svc.UpdateStatus(context.Background(), 9999, domain.ReservationConfirmed)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
