package entity

// Table is read-only reference data, seeded externally.
type Table struct {
	TableID     int    `db:"table_id"`
	TableCode   string `db:"table_code"`
	Capacity    int    `db:"capacity"`
	MinCapacity int    `db:"min_capacity"`
	IsActive    bool   `db:"is_active"`
	FloorID     int    `db:"floor_id"`
}
