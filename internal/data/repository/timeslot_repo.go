package repository

import (
	"context"
	"fmt"

	"table-reservation/internal/data/entity"
	"table-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TimeslotRepository interface {
	FindAll(ctx context.Context) ([]*entity.Timeslot, error)
	FindByID(ctx context.Context, timeslotID int) (*entity.Timeslot, error)
}

type timeslotRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTimeslotRepository(db database.Querier, log *zap.Logger) TimeslotRepository {
	return &timeslotRepository{
		db:  db,
		log: log.With(zap.String("repository", "timeslot")),
	}
}

func (r *timeslotRepository) FindAll(ctx context.Context) ([]*entity.Timeslot, error) {
	query := `
		SELECT timeslot_id, slot_id, start_at, end_at
		FROM timeslots
		ORDER BY start_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find timeslots", zap.Error(err))
		return nil, fmt.Errorf("find timeslots: %w", err)
	}
	defer rows.Close()

	var timeslots []*entity.Timeslot
	for rows.Next() {
		var ts entity.Timeslot
		err := rows.Scan(
			&ts.TimeslotID,
			&ts.SlotID,
			&ts.StartAt,
			&ts.EndAt,
		)
		if err != nil {
			r.log.Error("Failed to scan timeslot row", zap.Error(err))
			return nil, fmt.Errorf("scan timeslot row: %w", err)
		}
		timeslots = append(timeslots, &ts)
	}

	return timeslots, nil
}

func (r *timeslotRepository) FindByID(ctx context.Context, timeslotID int) (*entity.Timeslot, error) {
	query := `
		SELECT timeslot_id, slot_id, start_at, end_at
		FROM timeslots
		WHERE timeslot_id = $1
	`

	var ts entity.Timeslot
	err := r.db.QueryRow(ctx, query, timeslotID).Scan(
		&ts.TimeslotID,
		&ts.SlotID,
		&ts.StartAt,
		&ts.EndAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find timeslot by ID",
			zap.Error(err),
			zap.Int("timeslot_id", timeslotID),
		)
		return nil, fmt.Errorf("find timeslot by ID %d: %w", timeslotID, err)
	}

	return &ts, nil
}
