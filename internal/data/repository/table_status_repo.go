package repository

import (
	"context"
	"fmt"

	"table-reservation/internal/data/entity"
	"table-reservation/pkg/database"

	"go.uber.org/zap"
)

type TableStatusRepository interface {
	// LockByPairs takes row locks on the (table, timeslot) status rows,
	// serializing concurrent creates racing on the same tables. Must run
	// inside a transaction.
	LockByPairs(ctx context.Context, timeslotID int, tableIDs []int) ([]*entity.TableTimeslotStatus, error)

	// UpdateStatus sets the occupancy status for every (table, timeslot)
	// pair and returns how many rows were touched.
	UpdateStatus(ctx context.Context, timeslotID int, tableIDs []int, status entity.TableStatus) (int64, error)
}

type tableStatusRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTableStatusRepository(db database.Querier, log *zap.Logger) TableStatusRepository {
	return &tableStatusRepository{
		db:  db,
		log: log.With(zap.String("repository", "table_status")),
	}
}

func (r *tableStatusRepository) LockByPairs(ctx context.Context, timeslotID int, tableIDs []int) ([]*entity.TableTimeslotStatus, error) {
	query := `
		SELECT table_id, timeslot_id, status
		FROM table_timeslot_status
		WHERE timeslot_id = $1 AND table_id = ANY($2)
		ORDER BY table_id
		FOR UPDATE
	`

	rows, err := r.db.Query(ctx, query, timeslotID, tableIDs)
	if err != nil {
		r.log.Error("Failed to lock table status rows",
			zap.Error(err),
			zap.Int("timeslot_id", timeslotID),
			zap.Ints("table_ids", tableIDs),
		)
		return nil, fmt.Errorf("lock table status rows for timeslot %d: %w", timeslotID, err)
	}
	defer rows.Close()

	var statuses []*entity.TableTimeslotStatus
	for rows.Next() {
		var s entity.TableTimeslotStatus
		err := rows.Scan(&s.TableID, &s.TimeslotID, &s.Status)
		if err != nil {
			r.log.Error("Failed to scan table status row", zap.Error(err))
			return nil, fmt.Errorf("scan table status row: %w", err)
		}
		statuses = append(statuses, &s)
	}

	return statuses, nil
}

func (r *tableStatusRepository) UpdateStatus(ctx context.Context, timeslotID int, tableIDs []int, status entity.TableStatus) (int64, error) {
	query := `
		UPDATE table_timeslot_status
		SET status = $3
		WHERE timeslot_id = $1 AND table_id = ANY($2)
	`

	result, err := r.db.Exec(ctx, query, timeslotID, tableIDs, status)
	if err != nil {
		r.log.Error("Failed to update table status",
			zap.Error(err),
			zap.Int("timeslot_id", timeslotID),
			zap.Ints("table_ids", tableIDs),
			zap.String("status", string(status)),
		)
		return 0, fmt.Errorf("update table status for timeslot %d to %s: %w", timeslotID, string(status), err)
	}

	return result.RowsAffected(), nil
}
