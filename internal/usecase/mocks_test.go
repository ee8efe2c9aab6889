package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"table-reservation/internal/data/entity"
	"table-reservation/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// memStore is shared in-memory state behind the fake repositories. The fake
// transaction runner snapshots it before each InTx and restores it on error,
// mirroring the all-or-nothing behavior of the real store.
type memStore struct {
	users        map[string]entity.User
	floors       map[int]entity.Floor
	tables       map[int]entity.Table
	timeslots    map[int]entity.Timeslot
	statuses     map[[2]int]entity.TableStatus // key: {tableID, timeslotID}
	reservations map[uuid.UUID]entity.Reservation
	resTables    []entity.ReservationTable
	checkins     []entity.CheckIn
	cancelLogs   []entity.CancelLog

	// failOn forces an error from a named fake operation
	failOn string
}

var errStore = errors.New("store unavailable")

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[string]entity.User),
		floors:       make(map[int]entity.Floor),
		tables:       make(map[int]entity.Table),
		timeslots:    make(map[int]entity.Timeslot),
		statuses:     make(map[[2]int]entity.TableStatus),
		reservations: make(map[uuid.UUID]entity.Reservation),
	}
}

func (m *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range m.users {
		c.users[k] = v
	}
	for k, v := range m.floors {
		c.floors[k] = v
	}
	for k, v := range m.tables {
		c.tables[k] = v
	}
	for k, v := range m.timeslots {
		c.timeslots[k] = v
	}
	for k, v := range m.statuses {
		c.statuses[k] = v
	}
	for k, v := range m.reservations {
		c.reservations[k] = v
	}
	c.resTables = append([]entity.ReservationTable(nil), m.resTables...)
	c.checkins = append([]entity.CheckIn(nil), m.checkins...)
	c.cancelLogs = append([]entity.CancelLog(nil), m.cancelLogs...)
	c.failOn = m.failOn
	return c
}

func (m *memStore) restore(from *memStore) {
	m.users = from.users
	m.floors = from.floors
	m.tables = from.tables
	m.timeslots = from.timeslots
	m.statuses = from.statuses
	m.reservations = from.reservations
	m.resTables = from.resTables
	m.checkins = from.checkins
	m.cancelLogs = from.cancelLogs
}

func newMemRepos(m *memStore) *repository.Repository {
	return &repository.Repository{
		User:             &memUserRepo{m},
		Floor:            &memFloorRepo{m},
		Table:            &memTableRepo{m},
		Timeslot:         &memTimeslotRepo{m},
		TableStatus:      &memTableStatusRepo{m},
		Reservation:      &memReservationRepo{m},
		ReservationTable: &memReservationTableRepo{m},
		CheckIn:          &memCheckInRepo{m},
		CancelLog:        &memCancelLogRepo{m},
	}
}

type memTxRunner struct {
	m *memStore
}

func (t *memTxRunner) InTx(ctx context.Context, fn func(r *repository.Repository) error) error {
	snapshot := t.m.clone()
	if err := fn(newMemRepos(t.m)); err != nil {
		t.m.restore(snapshot)
		return err
	}
	return nil
}

// ==================== FAKE REPOSITORIES ====================

type memUserRepo struct{ m *memStore }

func (r *memUserRepo) Upsert(ctx context.Context, user *entity.User) error {
	if _, ok := r.m.users[user.UserID]; !ok {
		r.m.users[user.UserID] = *user
	}
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, userID string) (*entity.User, error) {
	if user, ok := r.m.users[userID]; ok {
		u := user
		return &u, nil
	}
	return nil, nil
}

func (r *memUserRepo) LockByID(ctx context.Context, userID string) (*entity.User, error) {
	return r.FindByID(ctx, userID)
}

type memFloorRepo struct{ m *memStore }

func (r *memFloorRepo) FindByID(ctx context.Context, floorID int) (*entity.Floor, error) {
	if floor, ok := r.m.floors[floorID]; ok {
		f := floor
		return &f, nil
	}
	return nil, nil
}

type memTableRepo struct{ m *memStore }

func (r *memTableRepo) FindAll(ctx context.Context) ([]*entity.Table, error) {
	ids := make([]int, 0, len(r.m.tables))
	for id := range r.m.tables {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	result := make([]*entity.Table, 0, len(ids))
	for _, id := range ids {
		t := r.m.tables[id]
		result = append(result, &t)
	}
	return result, nil
}

func (r *memTableRepo) FindByID(ctx context.Context, tableID int) (*entity.Table, error) {
	if table, ok := r.m.tables[tableID]; ok {
		t := table
		return &t, nil
	}
	return nil, nil
}

func (r *memTableRepo) FindByIDs(ctx context.Context, tableIDs []int) ([]*entity.Table, error) {
	var result []*entity.Table
	for _, id := range tableIDs {
		if table, ok := r.m.tables[id]; ok {
			t := table
			result = append(result, &t)
		}
	}
	return result, nil
}

func (r *memTableRepo) FindByFloor(ctx context.Context, floorID int) ([]*entity.Table, error) {
	all, _ := r.FindAll(ctx)
	var result []*entity.Table
	for _, t := range all {
		if t.FloorID == floorID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *memTableRepo) FindActiveWithStatus(ctx context.Context, timeslotID int) ([]*repository.TableWithStatus, error) {
	all, _ := r.FindAll(ctx)
	var result []*repository.TableWithStatus
	for _, t := range all {
		if !t.IsActive {
			continue
		}
		status, ok := r.m.statuses[[2]int{t.TableID, timeslotID}]
		if !ok {
			continue
		}
		result = append(result, &repository.TableWithStatus{Table: *t, Status: status})
	}
	return result, nil
}

type memTimeslotRepo struct{ m *memStore }

func (r *memTimeslotRepo) FindAll(ctx context.Context) ([]*entity.Timeslot, error) {
	ids := make([]int, 0, len(r.m.timeslots))
	for id := range r.m.timeslots {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	result := make([]*entity.Timeslot, 0, len(ids))
	for _, id := range ids {
		ts := r.m.timeslots[id]
		result = append(result, &ts)
	}
	return result, nil
}

func (r *memTimeslotRepo) FindByID(ctx context.Context, timeslotID int) (*entity.Timeslot, error) {
	if ts, ok := r.m.timeslots[timeslotID]; ok {
		t := ts
		return &t, nil
	}
	return nil, nil
}

type memTableStatusRepo struct{ m *memStore }

func (r *memTableStatusRepo) LockByPairs(ctx context.Context, timeslotID int, tableIDs []int) ([]*entity.TableTimeslotStatus, error) {
	var result []*entity.TableTimeslotStatus
	for _, tableID := range tableIDs {
		if status, ok := r.m.statuses[[2]int{tableID, timeslotID}]; ok {
			result = append(result, &entity.TableTimeslotStatus{
				TableID:    tableID,
				TimeslotID: timeslotID,
				Status:     status,
			})
		}
	}
	return result, nil
}

func (r *memTableStatusRepo) UpdateStatus(ctx context.Context, timeslotID int, tableIDs []int, status entity.TableStatus) (int64, error) {
	if r.m.failOn == "table_status.update" {
		return 0, errStore
	}
	var affected int64
	for _, tableID := range tableIDs {
		key := [2]int{tableID, timeslotID}
		if _, ok := r.m.statuses[key]; ok {
			r.m.statuses[key] = status
			affected++
		}
	}
	return affected, nil
}

type memReservationRepo struct{ m *memStore }

func (r *memReservationRepo) Create(ctx context.Context, reservation *entity.Reservation) error {
	r.m.reservations[reservation.ID] = *reservation
	return nil
}

func (r *memReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	if reservation, ok := r.m.reservations[id]; ok {
		res := reservation
		return &res, nil
	}
	return nil, nil
}

func (r *memReservationRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	return r.FindByID(ctx, id)
}

func (r *memReservationRepo) FindActiveByUser(ctx context.Context, userID string) (*entity.Reservation, error) {
	var newest *entity.Reservation
	for _, reservation := range r.m.reservations {
		if reservation.UserID != userID || !reservation.Status.IsActive() {
			continue
		}
		res := reservation
		if newest == nil || res.CreatedAt.After(newest.CreatedAt) {
			newest = &res
		}
	}
	return newest, nil
}

func (r *memReservationRepo) FindHistoryByUser(ctx context.Context, userID string) ([]*entity.Reservation, error) {
	var result []*entity.Reservation
	for _, reservation := range r.m.reservations {
		if reservation.UserID != userID || !reservation.Status.IsTerminal() {
			continue
		}
		res := reservation
		result = append(result, &res)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memReservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus, updatedAt time.Time) error {
	reservation, ok := r.m.reservations[id]
	if !ok {
		return errors.New("reservation not found")
	}
	reservation.Status = status
	reservation.UpdatedAt = updatedAt
	r.m.reservations[id] = reservation
	return nil
}

type memReservationTableRepo struct{ m *memStore }

func (r *memReservationTableRepo) CreateBatch(ctx context.Context, rows []*entity.ReservationTable) error {
	if r.m.failOn == "reservation_table.create" {
		// same shape the store raises on a (table_id, timeslot_id) clash
		return &pgconn.PgError{Code: "23505", ConstraintName: "reservation_tables_table_id_timeslot_id_key"}
	}
	for _, row := range rows {
		for _, existing := range r.m.resTables {
			if existing.TableID == row.TableID && existing.TimeslotID == row.TimeslotID {
				return &pgconn.PgError{Code: "23505", ConstraintName: "reservation_tables_table_id_timeslot_id_key"}
			}
		}
		r.m.resTables = append(r.m.resTables, *row)
	}
	return nil
}

func (r *memReservationTableRepo) FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservationTable, error) {
	var result []*entity.ReservationTable
	for _, row := range r.m.resTables {
		if row.ReservationID == reservationID {
			rt := row
			result = append(result, &rt)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TableID < result[j].TableID })
	return result, nil
}

func (r *memReservationTableRepo) FindActiveByPairs(ctx context.Context, timeslotID int, tableIDs []int) ([]*entity.ReservationTable, error) {
	var result []*entity.ReservationTable
	for _, row := range r.m.resTables {
		if row.TimeslotID != timeslotID {
			continue
		}
		reservation, ok := r.m.reservations[row.ReservationID]
		if !ok || !reservation.Status.IsActive() {
			continue
		}
		for _, tableID := range tableIDs {
			if row.TableID == tableID {
				rt := row
				result = append(result, &rt)
			}
		}
	}
	return result, nil
}

func (r *memReservationTableRepo) DeleteByPairs(ctx context.Context, timeslotID int, tableIDs []int) error {
	keep := r.m.resTables[:0:0]
	for _, row := range r.m.resTables {
		matched := false
		if row.TimeslotID == timeslotID {
			for _, tableID := range tableIDs {
				if row.TableID == tableID {
					matched = true
					break
				}
			}
		}
		if !matched {
			keep = append(keep, row)
		}
	}
	r.m.resTables = keep
	return nil
}

type memCheckInRepo struct{ m *memStore }

func (r *memCheckInRepo) Create(ctx context.Context, checkin *entity.CheckIn) error {
	r.m.checkins = append(r.m.checkins, *checkin)
	return nil
}

func (r *memCheckInRepo) FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*entity.CheckIn, error) {
	for i := len(r.m.checkins) - 1; i >= 0; i-- {
		if r.m.checkins[i].ReservationID == reservationID {
			c := r.m.checkins[i]
			return &c, nil
		}
	}
	return nil, nil
}

type memCancelLogRepo struct{ m *memStore }

func (r *memCancelLogRepo) Create(ctx context.Context, cancelLog *entity.CancelLog) error {
	r.m.cancelLogs = append(r.m.cancelLogs, *cancelLog)
	return nil
}
