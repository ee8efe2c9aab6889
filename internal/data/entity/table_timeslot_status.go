package entity

type TableStatus string

const (
	TableStatusAvailable TableStatus = "available"
	TableStatusReserved  TableStatus = "reserved"
	TableStatusOccupied  TableStatus = "occupied"
)

// TableTimeslotStatus is the authoritative "is this table free" signal for
// other clients. Exactly one row per (table, timeslot) pair is pre-seeded;
// the reservation lifecycle keeps it truthful.
type TableTimeslotStatus struct {
	TableID    int         `db:"table_id"`
	TimeslotID int         `db:"timeslot_id"`
	Status     TableStatus `db:"status"`
}
