package repository

import (
	"context"
	"fmt"

	"table-reservation/internal/data/entity"
	"table-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CheckInRepository interface {
	Create(ctx context.Context, checkin *entity.CheckIn) error
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*entity.CheckIn, error)
}

type checkInRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCheckInRepository(db database.Querier, log *zap.Logger) CheckInRepository {
	return &checkInRepository{
		db:  db,
		log: log.With(zap.String("repository", "checkin")),
	}
}

func (r *checkInRepository) Create(ctx context.Context, checkin *entity.CheckIn) error {
	query := `
		INSERT INTO checkins (id, reservation_id, checkin_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query,
		checkin.ID,
		checkin.ReservationID,
		checkin.CheckinAt,
	)

	if err != nil {
		r.log.Error("Failed to create checkin",
			zap.Error(err),
			zap.String("reservation_id", checkin.ReservationID.String()),
		)
		return fmt.Errorf("create checkin for reservation %s: %w", checkin.ReservationID.String(), err)
	}

	return nil
}

func (r *checkInRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*entity.CheckIn, error) {
	query := `
		SELECT id, reservation_id, checkin_at
		FROM checkins
		WHERE reservation_id = $1
		ORDER BY checkin_at DESC
		LIMIT 1
	`

	var checkin entity.CheckIn
	err := r.db.QueryRow(ctx, query, reservationID).Scan(
		&checkin.ID,
		&checkin.ReservationID,
		&checkin.CheckinAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find checkin by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find checkin by reservation ID %s: %w", reservationID.String(), err)
	}

	return &checkin, nil
}
