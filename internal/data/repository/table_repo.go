package repository

import (
	"context"
	"fmt"

	"table-reservation/internal/data/entity"
	"table-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TableWithStatus is a table flattened together with its occupancy status
// for one timeslot, the shape the frontend consumes.
type TableWithStatus struct {
	Table  entity.Table
	Status entity.TableStatus
}

type TableRepository interface {
	FindAll(ctx context.Context) ([]*entity.Table, error)
	FindByID(ctx context.Context, tableID int) (*entity.Table, error)
	FindByIDs(ctx context.Context, tableIDs []int) ([]*entity.Table, error)
	FindByFloor(ctx context.Context, floorID int) ([]*entity.Table, error)

	// FindActiveWithStatus returns every active table joined with its
	// occupancy status for the given timeslot, ordered by table id.
	FindActiveWithStatus(ctx context.Context, timeslotID int) ([]*TableWithStatus, error)
}

type tableRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTableRepository(db database.Querier, log *zap.Logger) TableRepository {
	return &tableRepository{
		db:  db,
		log: log.With(zap.String("repository", "table")),
	}
}

const tableColumns = `table_id, table_code, capacity, min_capacity, is_active, floor_id`

func (r *tableRepository) FindAll(ctx context.Context) ([]*entity.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables ORDER BY table_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find tables", zap.Error(err))
		return nil, fmt.Errorf("find tables: %w", err)
	}
	defer rows.Close()

	return r.scanTables(rows)
}

func (r *tableRepository) FindByID(ctx context.Context, tableID int) (*entity.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables WHERE table_id = $1`

	var table entity.Table
	err := r.db.QueryRow(ctx, query, tableID).Scan(
		&table.TableID,
		&table.TableCode,
		&table.Capacity,
		&table.MinCapacity,
		&table.IsActive,
		&table.FloorID,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find table by ID",
			zap.Error(err),
			zap.Int("table_id", tableID),
		)
		return nil, fmt.Errorf("find table by ID %d: %w", tableID, err)
	}

	return &table, nil
}

func (r *tableRepository) FindByIDs(ctx context.Context, tableIDs []int) ([]*entity.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables WHERE table_id = ANY($1) ORDER BY table_id`

	rows, err := r.db.Query(ctx, query, tableIDs)
	if err != nil {
		r.log.Error("Failed to find tables by IDs",
			zap.Error(err),
			zap.Ints("table_ids", tableIDs),
		)
		return nil, fmt.Errorf("find tables by IDs: %w", err)
	}
	defer rows.Close()

	return r.scanTables(rows)
}

func (r *tableRepository) FindByFloor(ctx context.Context, floorID int) ([]*entity.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables WHERE floor_id = $1 ORDER BY table_id`

	rows, err := r.db.Query(ctx, query, floorID)
	if err != nil {
		r.log.Error("Failed to find tables by floor",
			zap.Error(err),
			zap.Int("floor_id", floorID),
		)
		return nil, fmt.Errorf("find tables by floor %d: %w", floorID, err)
	}
	defer rows.Close()

	return r.scanTables(rows)
}

func (r *tableRepository) FindActiveWithStatus(ctx context.Context, timeslotID int) ([]*TableWithStatus, error) {
	query := `
		SELECT t.table_id, t.table_code, t.capacity, t.min_capacity, t.is_active, t.floor_id, s.status
		FROM tables t
		INNER JOIN table_timeslot_status s ON s.table_id = t.table_id
		WHERE t.is_active = TRUE AND s.timeslot_id = $1
		ORDER BY t.table_id
	`

	rows, err := r.db.Query(ctx, query, timeslotID)
	if err != nil {
		r.log.Error("Failed to find tables with status",
			zap.Error(err),
			zap.Int("timeslot_id", timeslotID),
		)
		return nil, fmt.Errorf("find tables with status for timeslot %d: %w", timeslotID, err)
	}
	defer rows.Close()

	var result []*TableWithStatus
	for rows.Next() {
		var ts TableWithStatus
		err := rows.Scan(
			&ts.Table.TableID,
			&ts.Table.TableCode,
			&ts.Table.Capacity,
			&ts.Table.MinCapacity,
			&ts.Table.IsActive,
			&ts.Table.FloorID,
			&ts.Status,
		)
		if err != nil {
			r.log.Error("Failed to scan table with status row", zap.Error(err))
			return nil, fmt.Errorf("scan table with status row: %w", err)
		}
		result = append(result, &ts)
	}

	return result, nil
}

func (r *tableRepository) scanTables(rows pgx.Rows) ([]*entity.Table, error) {
	var tables []*entity.Table
	for rows.Next() {
		var table entity.Table
		err := rows.Scan(
			&table.TableID,
			&table.TableCode,
			&table.Capacity,
			&table.MinCapacity,
			&table.IsActive,
			&table.FloorID,
		)
		if err != nil {
			r.log.Error("Failed to scan table row", zap.Error(err))
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		tables = append(tables, &table)
	}

	return tables, nil
}
