package usecase

import (
	"context"
	"errors"
	"time"

	"table-reservation/internal/data/entity"
	"table-reservation/internal/data/repository"
	"table-reservation/internal/dto/request"
	"table-reservation/internal/dto/response"
	"table-reservation/pkg/apperr"
	"table-reservation/pkg/database"
	"table-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	Create(ctx context.Context, req *request.CreateReservationRequest) (*response.CreateReservationResponse, error)
	CheckIn(ctx context.Context, reservationID string, req *request.CheckInRequest) (*response.CheckInResponse, error)
	CheckOut(ctx context.Context, reservationID string, req *request.CheckOutRequest) (*response.CheckOutResponse, error)
	Cancel(ctx context.Context, reservationID string, req *request.CancelRequest) (*response.CancelResponse, error)
	GetActiveForUser(ctx context.Context, userID string) (*response.ReservationResponse, error)
	GetHistoryForUser(ctx context.Context, userID string) ([]*response.ReservationResponse, error)
}

type reservationService struct {
	repo *repository.Repository
	tx   repository.TxRunner
	log  *zap.Logger
}

func NewReservationService(repo *repository.Repository, tx repository.TxRunner, log *zap.Logger) ReservationService {
	return &reservationService{
		repo: repo,
		tx:   tx,
		log:  log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) Create(ctx context.Context, req *request.CreateReservationRequest) (*response.CreateReservationResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed", validationDetails(errs))
	}

	// Lookup failures are detected before any mutating step.
	user, err := s.repo.User.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, apperr.Internal("check user", err)
	}
	if user == nil {
		return nil, apperr.NotFoundWithID("user", req.UserID)
	}

	timeslot, err := s.repo.Timeslot.FindByID(ctx, req.TimeslotID)
	if err != nil {
		return nil, apperr.Internal("check timeslot", err)
	}
	if timeslot == nil {
		return nil, apperr.NotFound("timeslot")
	}

	tables, err := s.repo.Table.FindByIDs(ctx, req.TableIDs)
	if err != nil {
		return nil, apperr.Internal("check tables", err)
	}
	if len(tables) != len(req.TableIDs) {
		return nil, apperr.NotFound("one or more tables")
	}
	for _, table := range tables {
		if !table.IsActive {
			return nil, apperr.Validation("table is not active", map[string]any{
				"table_id": table.TableID,
			})
		}
	}

	reservation := &entity.Reservation{
		UserID:     req.UserID,
		TimeslotID: req.TimeslotID,
		PartySize:  req.PartySize,
		Status:     entity.ReservationStatusPending,
	}

	txErr := s.tx.InTx(ctx, func(r *repository.Repository) error {
		// Availability is evaluated against the same transactional snapshot
		// used for the inserts; the row locks taken here keep two racing
		// creates from both passing the check.
		if err := s.checkAvailability(ctx, r, req.UserID, req.TimeslotID, req.TableIDs); err != nil {
			return err
		}

		now := time.Now()
		reservation.ID = uuid.New()
		reservation.CreatedAt = now
		reservation.UpdatedAt = now

		if err := r.Reservation.Create(ctx, reservation); err != nil {
			return err
		}

		// (table_id, timeslot_id) is unique among join rows; leftover rows
		// from terminal reservations must be cleared before re-insert.
		if err := r.ReservationTable.DeleteByPairs(ctx, req.TimeslotID, req.TableIDs); err != nil {
			return err
		}

		rows := make([]*entity.ReservationTable, len(req.TableIDs))
		for i, tableID := range req.TableIDs {
			rows[i] = &entity.ReservationTable{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				ReservationID: reservation.ID,
				TableID:       tableID,
				TimeslotID:    req.TimeslotID,
			}
		}
		if err := r.ReservationTable.CreateBatch(ctx, rows); err != nil {
			return err
		}

		return s.syncTableStatus(ctx, r, req.TimeslotID, req.TableIDs, entity.TableStatusReserved)
	})

	if txErr != nil {
		if database.IsUniqueViolation(txErr) {
			// Unique constraint backstop: a racing create got there first.
			return nil, apperr.Conflict("one or more tables are already reserved for this timeslot")
		}
		var appErr *apperr.Error
		if errors.As(txErr, &appErr) {
			return nil, txErr
		}
		s.log.Error("Failed to create reservation",
			zap.Error(txErr),
			zap.String("user_id", req.UserID),
			zap.Int("timeslot_id", req.TimeslotID),
		)
		return nil, apperr.Internal("create reservation", txErr)
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("user_id", req.UserID),
		zap.Int("timeslot_id", req.TimeslotID),
		zap.Ints("table_ids", req.TableIDs),
		zap.Int("party_size", req.PartySize),
	)

	return &response.CreateReservationResponse{
		ReservationID: reservation.ID.String(),
		Status:        reservation.Status,
	}, nil
}

// checkAvailability runs inside the create transaction. It locks the user
// row and the (table, timeslot) status rows, then rejects with Conflict if
// the user already holds an active reservation or any requested table is
// taken for the timeslot.
func (s *reservationService) checkAvailability(ctx context.Context, r *repository.Repository, userID string, timeslotID int, tableIDs []int) error {
	if _, err := r.User.LockByID(ctx, userID); err != nil {
		return err
	}

	active, err := r.Reservation.FindActiveByUser(ctx, userID)
	if err != nil {
		return err
	}
	if active != nil {
		details := map[string]any{
			"existing_reservation_id": active.ID.String(),
			"existing_timeslot_id":    active.TimeslotID,
			"current_status":          string(active.Status),
		}
		if ts, tsErr := r.Timeslot.FindByID(ctx, active.TimeslotID); tsErr == nil && ts != nil {
			details["existing_timeslot"] = ts.SlotID
		}
		return apperr.Conflict("you already have an active reservation").WithDetails(details)
	}

	if _, err := r.TableStatus.LockByPairs(ctx, timeslotID, tableIDs); err != nil {
		return err
	}

	taken, err := r.ReservationTable.FindActiveByPairs(ctx, timeslotID, tableIDs)
	if err != nil {
		return err
	}
	if len(taken) > 0 {
		takenIDs := make([]int, len(taken))
		for i, rt := range taken {
			takenIDs[i] = rt.TableID
		}
		return apperr.Conflict("one or more tables are already reserved for this timeslot").WithDetails(map[string]any{
			"table_ids": takenIDs,
		})
	}

	return nil
}

// syncTableStatus pushes the per-table occupancy status in lockstep with the
// reservation transition. It must run inside the caller's transaction. A
// missing (table, timeslot) row is a seeding defect outside this core: it is
// logged, never fabricated.
func (s *reservationService) syncTableStatus(ctx context.Context, r *repository.Repository, timeslotID int, tableIDs []int, status entity.TableStatus) error {
	affected, err := r.TableStatus.UpdateStatus(ctx, timeslotID, tableIDs, status)
	if err != nil {
		return err
	}

	if affected < int64(len(tableIDs)) {
		s.log.Warn("Table status rows missing for some pairs",
			zap.Int("timeslot_id", timeslotID),
			zap.Ints("table_ids", tableIDs),
			zap.Int64("rows_updated", affected),
			zap.String("status", string(status)),
		)
	}

	return nil
}

func (s *reservationService) CheckIn(ctx context.Context, reservationID string, req *request.CheckInRequest) (*response.CheckInResponse, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, apperr.Validation("invalid reservation ID format", map[string]any{
			"reservation_id": reservationID,
		})
	}

	var checkin *entity.CheckIn

	txErr := s.tx.InTx(ctx, func(r *repository.Repository) error {
		reservation, err := r.Reservation.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if reservation == nil {
			return apperr.NotFoundWithID("reservation", reservationID)
		}
		if req.UserID != "" && reservation.UserID != req.UserID {
			return apperr.Forbidden("reservation belongs to another user")
		}
		if !reservation.Status.CanCheckIn() {
			if reservation.Status == entity.ReservationStatusCheckedIn {
				return apperr.Conflict("already checked in").WithDetails(statusDetails(reservation))
			}
			return apperr.Conflict("reservation cannot be checked in").WithDetails(statusDetails(reservation))
		}

		now := time.Now()
		checkin = &entity.CheckIn{
			ID:            uuid.New(),
			ReservationID: reservation.ID,
			CheckinAt:     now,
		}
		if err := r.CheckIn.Create(ctx, checkin); err != nil {
			return err
		}
		if err := r.Reservation.UpdateStatus(ctx, reservation.ID, entity.ReservationStatusCheckedIn, now); err != nil {
			return err
		}

		tableIDs, err := s.linkedTableIDs(ctx, r, reservation.ID)
		if err != nil {
			return err
		}
		return s.syncTableStatus(ctx, r, reservation.TimeslotID, tableIDs, entity.TableStatusOccupied)
	})

	if txErr != nil {
		return nil, s.classify(txErr, "check in reservation", reservationID)
	}

	s.log.Info("Reservation checked in",
		zap.String("reservation_id", reservationID),
		zap.String("checkin_id", checkin.ID.String()),
	)

	return &response.CheckInResponse{
		CheckinID:     checkin.ID.String(),
		ReservationID: reservationID,
		Status:        entity.ReservationStatusCheckedIn,
		CheckinAt:     checkin.CheckinAt,
	}, nil
}

func (s *reservationService) CheckOut(ctx context.Context, reservationID string, req *request.CheckOutRequest) (*response.CheckOutResponse, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, apperr.Validation("invalid reservation ID format", map[string]any{
			"reservation_id": reservationID,
		})
	}

	var checkoutAt time.Time

	txErr := s.tx.InTx(ctx, func(r *repository.Repository) error {
		reservation, err := r.Reservation.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if reservation == nil {
			return apperr.NotFoundWithID("reservation", reservationID)
		}
		if req.UserID != "" && reservation.UserID != req.UserID {
			return apperr.Forbidden("reservation belongs to another user")
		}
		if !reservation.Status.CanCheckOut() {
			return apperr.Conflict("reservation is not checked in").WithDetails(statusDetails(reservation))
		}

		checkoutAt = time.Now()
		if err := r.Reservation.UpdateStatus(ctx, reservation.ID, entity.ReservationStatusCheckedOut, checkoutAt); err != nil {
			return err
		}

		tableIDs, err := s.linkedTableIDs(ctx, r, reservation.ID)
		if err != nil {
			return err
		}
		return s.syncTableStatus(ctx, r, reservation.TimeslotID, tableIDs, entity.TableStatusAvailable)
	})

	if txErr != nil {
		return nil, s.classify(txErr, "check out reservation", reservationID)
	}

	s.log.Info("Reservation checked out", zap.String("reservation_id", reservationID))

	return &response.CheckOutResponse{
		ReservationID: reservationID,
		Status:        entity.ReservationStatusCheckedOut,
		CheckoutAt:    checkoutAt,
	}, nil
}

func (s *reservationService) Cancel(ctx context.Context, reservationID string, req *request.CancelRequest) (*response.CancelResponse, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, apperr.Validation("invalid reservation ID format", map[string]any{
			"reservation_id": reservationID,
		})
	}

	var cancelledAt time.Time

	txErr := s.tx.InTx(ctx, func(r *repository.Repository) error {
		reservation, err := r.Reservation.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if reservation == nil {
			return apperr.NotFoundWithID("reservation", reservationID)
		}
		if req.UserID != "" && reservation.UserID != req.UserID {
			return apperr.Forbidden("reservation belongs to another user")
		}
		if !reservation.Status.CanCancel() {
			return apperr.Conflict("reservation can no longer be cancelled").WithDetails(statusDetails(reservation))
		}

		cancelledAt = time.Now()
		if err := r.Reservation.UpdateStatus(ctx, reservation.ID, entity.ReservationStatusCancelled, cancelledAt); err != nil {
			return err
		}

		// actor precedence: explicit canceller, then requesting user
		actor := req.CancelledBy
		if actor == nil && req.UserID != "" {
			userID := req.UserID
			actor = &userID
		}
		cancelLog := &entity.CancelLog{
			ID:            uuid.New(),
			ReservationID: reservation.ID,
			CancelledBy:   actor,
			CancelledAt:   cancelledAt,
		}
		if err := r.CancelLog.Create(ctx, cancelLog); err != nil {
			return err
		}

		tableIDs, err := s.linkedTableIDs(ctx, r, reservation.ID)
		if err != nil {
			return err
		}
		return s.syncTableStatus(ctx, r, reservation.TimeslotID, tableIDs, entity.TableStatusAvailable)
	})

	if txErr != nil {
		return nil, s.classify(txErr, "cancel reservation", reservationID)
	}

	s.log.Info("Reservation cancelled", zap.String("reservation_id", reservationID))

	return &response.CancelResponse{
		ReservationID: reservationID,
		Status:        entity.ReservationStatusCancelled,
		CancelledAt:   cancelledAt,
	}, nil
}

func (s *reservationService) GetActiveForUser(ctx context.Context, userID string) (*response.ReservationResponse, error) {
	reservation, err := s.repo.Reservation.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("get active reservation", err)
	}
	if reservation == nil {
		return nil, nil
	}

	return s.buildReservationResponse(ctx, reservation), nil
}

func (s *reservationService) GetHistoryForUser(ctx context.Context, userID string) ([]*response.ReservationResponse, error) {
	reservations, err := s.repo.Reservation.FindHistoryByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("get reservation history", err)
	}

	result := make([]*response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		result[i] = s.buildReservationResponse(ctx, reservation)
	}

	return result, nil
}

// ==================== HELPER METHODS ====================

func (s *reservationService) linkedTableIDs(ctx context.Context, r *repository.Repository, reservationID uuid.UUID) ([]int, error) {
	links, err := r.ReservationTable.FindByReservationID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	tableIDs := make([]int, len(links))
	for i, link := range links {
		tableIDs[i] = link.TableID
	}
	return tableIDs, nil
}

func (s *reservationService) buildReservationResponse(ctx context.Context, reservation *entity.Reservation) *response.ReservationResponse {
	resp := &response.ReservationResponse{
		ReservationID: reservation.ID.String(),
		UserID:        reservation.UserID,
		TimeslotID:    reservation.TimeslotID,
		PartySize:     reservation.PartySize,
		Status:        reservation.Status,
		CreatedAt:     reservation.CreatedAt,
		UpdatedAt:     reservation.UpdatedAt,
	}

	if ts, _ := s.repo.Timeslot.FindByID(ctx, reservation.TimeslotID); ts != nil {
		resp.SlotID = ts.SlotID
	}

	links, _ := s.repo.ReservationTable.FindByReservationID(ctx, reservation.ID)
	tableIDs := make([]int, len(links))
	for i, link := range links {
		tableIDs[i] = link.TableID
	}
	resp.TableIDs = tableIDs

	if len(tableIDs) > 0 {
		if tables, _ := s.repo.Table.FindByIDs(ctx, tableIDs); len(tables) > 0 {
			codes := make([]string, len(tables))
			for i, table := range tables {
				codes[i] = table.TableCode
			}
			resp.TableCodes = codes
		}
	}

	return resp
}

// classify passes usecase errors through and wraps store failures as
// Internal. The enclosing transaction has already rolled back by the time
// this runs, so no partial state is visible.
func (s *reservationService) classify(err error, operation, reservationID string) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}

	s.log.Error("Failed to "+operation,
		zap.Error(err),
		zap.String("reservation_id", reservationID),
	)
	return apperr.Internal(operation, err)
}

func statusDetails(reservation *entity.Reservation) map[string]any {
	return map[string]any{
		"reservation_id": reservation.ID.String(),
		"current_status": string(reservation.Status),
	}
}

func validationDetails(errs map[string]string) map[string]any {
	details := make(map[string]any, len(errs))
	for field, msg := range errs {
		details[field] = msg
	}
	return details
}
