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

type ReservationTableRepository interface {
	CreateBatch(ctx context.Context, rows []*entity.ReservationTable) error
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservationTable, error)

	// FindActiveByPairs returns join rows for the given (table, timeslot)
	// pairs whose parent reservation is still active.
	FindActiveByPairs(ctx context.Context, timeslotID int, tableIDs []int) ([]*entity.ReservationTable, error)

	// DeleteByPairs clears leftover rows for the exact pairs. Because
	// (table_id, timeslot_id) is unique, rows from terminal reservations
	// must go before fresh ones are inserted.
	DeleteByPairs(ctx context.Context, timeslotID int, tableIDs []int) error
}

type reservationTableRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewReservationTableRepository(db database.Querier, log *zap.Logger) ReservationTableRepository {
	return &reservationTableRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation_table")),
	}
}

func (r *reservationTableRepository) CreateBatch(ctx context.Context, rows []*entity.ReservationTable) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO reservation_tables (id, reservation_id, table_id, timeslot_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, row := range rows {
		_, err := r.db.Exec(ctx, query,
			row.ID,
			row.ReservationID,
			row.TableID,
			row.TimeslotID,
			row.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create reservation table row",
				zap.Error(err),
				zap.String("reservation_id", row.ReservationID.String()),
				zap.Int("table_id", row.TableID),
			)
			return fmt.Errorf("create reservation table row for reservation %s table %d: %w",
				row.ReservationID.String(), row.TableID, err)
		}
	}

	return nil
}

func (r *reservationTableRepository) FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservationTable, error) {
	query := `
		SELECT id, reservation_id, table_id, timeslot_id, created_at
		FROM reservation_tables
		WHERE reservation_id = $1
		ORDER BY table_id
	`

	rows, err := r.db.Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find reservation tables by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find reservation tables by reservation ID %s: %w", reservationID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *reservationTableRepository) FindActiveByPairs(ctx context.Context, timeslotID int, tableIDs []int) ([]*entity.ReservationTable, error) {
	query := `
		SELECT rt.id, rt.reservation_id, rt.table_id, rt.timeslot_id, rt.created_at
		FROM reservation_tables rt
		INNER JOIN reservations res ON res.id = rt.reservation_id
		WHERE rt.timeslot_id = $1 AND rt.table_id = ANY($2)
		  AND res.status IN ('PENDING', 'CONFIRMED', 'CHECKED_IN')
	`

	rows, err := r.db.Query(ctx, query, timeslotID, tableIDs)
	if err != nil {
		r.log.Error("Failed to find active reservation tables by pairs",
			zap.Error(err),
			zap.Int("timeslot_id", timeslotID),
			zap.Ints("table_ids", tableIDs),
		)
		return nil, fmt.Errorf("find active reservation tables for timeslot %d: %w", timeslotID, err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *reservationTableRepository) DeleteByPairs(ctx context.Context, timeslotID int, tableIDs []int) error {
	query := `DELETE FROM reservation_tables WHERE timeslot_id = $1 AND table_id = ANY($2)`

	_, err := r.db.Exec(ctx, query, timeslotID, tableIDs)
	if err != nil {
		r.log.Error("Failed to delete reservation tables by pairs",
			zap.Error(err),
			zap.Int("timeslot_id", timeslotID),
			zap.Ints("table_ids", tableIDs),
		)
		return fmt.Errorf("delete reservation tables for timeslot %d: %w", timeslotID, err)
	}

	return nil
}

func (r *reservationTableRepository) scanRows(rows pgx.Rows) ([]*entity.ReservationTable, error) {
	var result []*entity.ReservationTable
	for rows.Next() {
		var rt entity.ReservationTable
		err := rows.Scan(
			&rt.ID,
			&rt.ReservationID,
			&rt.TableID,
			&rt.TimeslotID,
			&rt.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan reservation table row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation table row: %w", err)
		}
		result = append(result, &rt)
	}

	return result, nil
}
