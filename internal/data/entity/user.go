package entity

import "time"

type UserType string

const (
	UserTypeStudent UserType = "student"
	UserTypeStaff   UserType = "staff"
)

// User is keyed by the external identity provider's stable id. The key is
// immutable after the first upsert.
type User struct {
	UserID    string    `db:"user_id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	UserType  UserType  `db:"user_type"`
	CreatedAt time.Time `db:"created_at"`
}
