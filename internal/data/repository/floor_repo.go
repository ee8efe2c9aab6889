package repository

import (
	"context"
	"fmt"

	"table-reservation/internal/data/entity"
	"table-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FloorRepository interface {
	FindByID(ctx context.Context, floorID int) (*entity.Floor, error)
}

type floorRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewFloorRepository(db database.Querier, log *zap.Logger) FloorRepository {
	return &floorRepository{
		db:  db,
		log: log.With(zap.String("repository", "floor")),
	}
}

func (r *floorRepository) FindByID(ctx context.Context, floorID int) (*entity.Floor, error) {
	query := `
		SELECT floor_id, name, open_time, close_time
		FROM floors
		WHERE floor_id = $1
	`

	var floor entity.Floor
	err := r.db.QueryRow(ctx, query, floorID).Scan(
		&floor.FloorID,
		&floor.Name,
		&floor.OpenTime,
		&floor.CloseTime,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find floor by ID",
			zap.Error(err),
			zap.Int("floor_id", floorID),
		)
		return nil, fmt.Errorf("find floor by ID %d: %w", floorID, err)
	}

	return &floor, nil
}
