package entity

import (
	"time"

	"github.com/google/uuid"
)

// CancelLog is an append-only audit trail. CancelledBy is nil when the
// cancelling actor was not supplied.
type CancelLog struct {
	ID            uuid.UUID `db:"id"`
	ReservationID uuid.UUID `db:"reservation_id"`
	CancelledBy   *string   `db:"cancelled_by"`
	CancelledAt   time.Time `db:"cancelled_at"`
}
