package entity

import "github.com/google/uuid"

// ReservationTable links a reservation to one of its tables. The store
// enforces uniqueness on (table_id, timeslot_id); stale rows from terminal
// reservations are cleared before re-insert.
type ReservationTable struct {
	BaseSimple
	ReservationID uuid.UUID `db:"reservation_id"`
	TableID       int       `db:"table_id"`
	TimeslotID    int       `db:"timeslot_id"`
}
