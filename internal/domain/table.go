package domain

import "time"

type TableStatus string

const (
	TableAvailable   TableStatus = "available"
	TableOccupied    TableStatus = "occupied"
	TableReserved    TableStatus = "reserved"
	TableMaintenance TableStatus = "maintenance"
)

func ValidTableStatus(s TableStatus) bool {
	switch s {
	case TableAvailable, TableOccupied, TableReserved, TableMaintenance:
		return true
	}
	return false
}

// Table.Status is a cached projection driven by reservation transitions and
// direct operator action. The authoritative availability check is the
// overlap scan over reservations, not this field.
type Table struct {
	ID        uint        `json:"id"`
	Number    int         `json:"number"`
	Capacity  int         `json:"capacity"`
	Status    TableStatus `json:"status"`
	Shape     string      `json:"shape"`
	PosX      int         `json:"pos_x"`
	PosY      int         `json:"pos_y"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
