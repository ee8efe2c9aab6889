package repository

import (
	"context"

	"table-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	User             UserRepository
	Floor            FloorRepository
	Table            TableRepository
	Timeslot         TimeslotRepository
	TableStatus      TableStatusRepository
	Reservation      ReservationRepository
	ReservationTable ReservationTableRepository
	CheckIn          CheckInRepository
	CancelLog        CancelLogRepository
}

func NewRepository(db database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:             NewUserRepository(db, log),
		Floor:            NewFloorRepository(db, log),
		Table:            NewTableRepository(db, log),
		Timeslot:         NewTimeslotRepository(db, log),
		TableStatus:      NewTableStatusRepository(db, log),
		Reservation:      NewReservationRepository(db, log),
		ReservationTable: NewReservationTableRepository(db, log),
		CheckIn:          NewCheckInRepository(db, log),
		CancelLog:        NewCancelLogRepository(db, log),
	}
}

// TxRunner executes fn against repositories bound to a single transaction.
// Commit on normal return, rollback on error. The usecase layer depends on
// this interface so lifecycle operations can be tested without a database.
type TxRunner interface {
	InTx(ctx context.Context, fn func(r *Repository) error) error
}

// Store is the production Repository plus the transaction primitive.
type Store struct {
	*Repository
	db  database.PgxIface
	log *zap.Logger
}

func NewStore(db database.PgxIface, log *zap.Logger) *Store {
	return &Store{
		Repository: NewRepository(db, log),
		db:         db,
		log:        log,
	}
}

// InTx implements TxRunner. The repositories handed to fn run every
// statement on the same pgx transaction.
func (s *Store) InTx(ctx context.Context, fn func(r *Repository) error) error {
	return database.WithinTx(ctx, s.db, func(tx pgx.Tx) error {
		return fn(NewRepository(tx, s.log))
	})
}
