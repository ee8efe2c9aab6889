package repository

import (
	"context"
	"fmt"

	"table-reservation/internal/data/entity"
	"table-reservation/pkg/database"

	"go.uber.org/zap"
)

type CancelLogRepository interface {
	Create(ctx context.Context, log *entity.CancelLog) error
}

type cancelLogRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCancelLogRepository(db database.Querier, log *zap.Logger) CancelLogRepository {
	return &cancelLogRepository{
		db:  db,
		log: log.With(zap.String("repository", "cancel_log")),
	}
}

func (r *cancelLogRepository) Create(ctx context.Context, cancelLog *entity.CancelLog) error {
	query := `
		INSERT INTO cancel_logs (id, reservation_id, cancelled_by, cancelled_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		cancelLog.ID,
		cancelLog.ReservationID,
		cancelLog.CancelledBy,
		cancelLog.CancelledAt,
	)

	if err != nil {
		r.log.Error("Failed to create cancel log",
			zap.Error(err),
			zap.String("reservation_id", cancelLog.ReservationID.String()),
		)
		return fmt.Errorf("create cancel log for reservation %s: %w", cancelLog.ReservationID.String(), err)
	}

	return nil
}
