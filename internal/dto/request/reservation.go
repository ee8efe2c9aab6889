package request

type CreateReservationRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	TimeslotID int    `json:"timeslot_id" validate:"required,min=1"`
	PartySize  int    `json:"party_size" validate:"required,min=1"`
	TableIDs   []int  `json:"table_ids" validate:"required,min=1,dive,min=1"`
}

// UserID is optional on lifecycle requests; when present it must match the
// reservation owner.
type CheckInRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type CheckOutRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type CancelRequest struct {
	UserID      string  `json:"user_id,omitempty"`
	CancelledBy *string `json:"cancelled_by,omitempty"`
}
