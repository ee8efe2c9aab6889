package entity

import "time"

// Timeslot is read-only reference data. SlotID is the external slot code
// shown to users (e.g. "A1"), TimeslotID the internal key.
type Timeslot struct {
	TimeslotID int       `db:"timeslot_id"`
	SlotID     string    `db:"slot_id"`
	StartAt    time.Time `db:"start_at"`
	EndAt      time.Time `db:"end_at"`
}
