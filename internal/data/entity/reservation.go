package entity

type ReservationStatus string

const (
	ReservationStatusPending       ReservationStatus = "PENDING"
	ReservationStatusConfirmed     ReservationStatus = "CONFIRMED"
	ReservationStatusCheckedIn     ReservationStatus = "CHECKED_IN"
	ReservationStatusCheckedOut    ReservationStatus = "CHECKED_OUT"
	ReservationStatusCancelled     ReservationStatus = "CANCELLED"
	ReservationStatusAutoCancelled ReservationStatus = "AUTO_CANCELLED"
	ReservationStatusExpired       ReservationStatus = "EXPIRED"
)

// ActiveStatuses are the statuses that hold tables. A user may have at most
// one reservation in any of them at a time.
var ActiveStatuses = []ReservationStatus{
	ReservationStatusPending,
	ReservationStatusConfirmed,
	ReservationStatusCheckedIn,
}

// IsActive reports whether the reservation still holds its tables.
func (s ReservationStatus) IsActive() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCheckedIn:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
// AUTO_CANCELLED and EXPIRED are set by external transitions; they are
// accepted here as terminal input states, never produced.
func (s ReservationStatus) IsTerminal() bool {
	switch s {
	case ReservationStatusCheckedOut, ReservationStatusCancelled,
		ReservationStatusAutoCancelled, ReservationStatusExpired:
		return true
	}
	return false
}

// CanCheckIn reports whether a check-in may start from s.
func (s ReservationStatus) CanCheckIn() bool {
	return s == ReservationStatusPending || s == ReservationStatusConfirmed
}

// CanCheckOut reports whether a check-out may start from s.
func (s ReservationStatus) CanCheckOut() bool {
	return s == ReservationStatusCheckedIn
}

// CanCancel reports whether the reservation may still be cancelled.
// Cancelling after check-in is not allowed.
func (s ReservationStatus) CanCancel() bool {
	return s == ReservationStatusPending || s == ReservationStatusConfirmed
}

type Reservation struct {
	Base
	UserID     string            `db:"user_id"`
	TimeslotID int               `db:"timeslot_id"`
	PartySize  int               `db:"party_size"`
	Status     ReservationStatus `db:"status"`
}
