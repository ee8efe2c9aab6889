package entity

import "time"

type Floor struct {
	FloorID   int       `db:"floor_id"`
	Name      string    `db:"name"`
	OpenTime  time.Time `db:"open_time"`
	CloseTime time.Time `db:"close_time"`
}
