package entity

import (
	"time"

	"github.com/google/uuid"
)

// CheckIn is append-only. At most one per reservation in normal flow.
type CheckIn struct {
	ID            uuid.UUID `db:"id"`
	ReservationID uuid.UUID `db:"reservation_id"`
	CheckinAt     time.Time `db:"checkin_at"`
}
