package response

import (
	"time"

	"table-reservation/internal/data/entity"
)

type CreateReservationResponse struct {
	ReservationID string                   `json:"reservation_id"`
	Status        entity.ReservationStatus `json:"status"`
}

type CheckInResponse struct {
	CheckinID     string                   `json:"checkin_id"`
	ReservationID string                   `json:"reservation_id"`
	Status        entity.ReservationStatus `json:"status"`
	CheckinAt     time.Time                `json:"checkin_at"`
}

type CheckOutResponse struct {
	ReservationID string                   `json:"reservation_id"`
	Status        entity.ReservationStatus `json:"status"`
	CheckoutAt    time.Time                `json:"checkout_at"`
}

type CancelResponse struct {
	ReservationID string                   `json:"reservation_id"`
	Status        entity.ReservationStatus `json:"status"`
	CancelledAt   time.Time                `json:"cancelled_at"`
}

type ReservationResponse struct {
	ReservationID string                   `json:"reservation_id"`
	UserID        string                   `json:"user_id"`
	TimeslotID    int                      `json:"timeslot_id"`
	SlotID        string                   `json:"slot_id,omitempty"`
	PartySize     int                      `json:"party_size"`
	Status        entity.ReservationStatus `json:"status"`
	TableIDs      []int                    `json:"table_ids"`
	TableCodes    []string                 `json:"table_codes,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}
