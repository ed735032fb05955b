package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationNoShow    ReservationStatus = "no_show"
)

func ValidReservationStatus(s ReservationStatus) bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationSeated,
		ReservationCompleted, ReservationCancelled, ReservationNoShow:
		return true
	}
	return false
}

// Active reports whether the status blocks the table's time window.
// Only pending, confirmed and seated reservations participate in
// conflict detection.
func (s ReservationStatus) Active() bool {
	return s == ReservationPending || s == ReservationConfirmed || s == ReservationSeated
}

// Terminal statuses admit no further transitions.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationCancelled || s == ReservationNoShow
}

type Reservation struct {
	ID        uint              `json:"id"`
	Date      string            `json:"date"` // YYYY-MM-DD
	Time      string            `json:"time"` // HH:MM, 24-hour
	Name      string            `json:"name"`
	Covers    int               `json:"covers"`
	TableID   uint              `json:"table_id"`
	Status    ReservationStatus `json:"status"`
	Note      string            `json:"note"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// StartMinutes converts the HH:MM time to minutes from midnight.
func (r Reservation) StartMinutes() (int, error) {
	return TimeToMinutes(r.Time)
}

func TimeToMinutes(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed time %q", hhmm)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", hhmm)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", hhmm)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time %q out of range", hhmm)
	}

	return hours*60 + minutes, nil
}
