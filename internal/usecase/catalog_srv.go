package usecase

import (
	"context"

	"table-reservation/internal/data/repository"
	"table-reservation/internal/dto/response"
	"table-reservation/pkg/apperr"

	"go.uber.org/zap"
)

// CatalogService serves the read-only table/floor/timeslot reference data.
type CatalogService interface {
	ListTables(ctx context.Context) ([]response.TableResponse, error)
	GetTable(ctx context.Context, tableID int) (*response.TableResponse, error)
	ListTablesByFloor(ctx context.Context, floorID int) ([]response.TableResponse, error)
	ListTimeslots(ctx context.Context) ([]response.TimeslotResponse, error)
	GetTimeslot(ctx context.Context, timeslotID int) (*response.TimeslotResponse, error)
	ListTablesForTimeslot(ctx context.Context, timeslotID int) ([]response.TableAvailabilityResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListTables(ctx context.Context) ([]response.TableResponse, error) {
	tables, err := s.repo.Table.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list tables", zap.Error(err))
		return nil, apperr.Internal("list tables", err)
	}

	result := make([]response.TableResponse, len(tables))
	for i, table := range tables {
		floor, _ := s.repo.Floor.FindByID(ctx, table.FloorID)
		result[i] = response.TableToResponse(table, floor)
	}

	return result, nil
}

func (s *catalogService) GetTable(ctx context.Context, tableID int) (*response.TableResponse, error) {
	table, err := s.repo.Table.FindByID(ctx, tableID)
	if err != nil {
		s.log.Error("Failed to get table",
			zap.Error(err),
			zap.Int("table_id", tableID),
		)
		return nil, apperr.Internal("get table", err)
	}
	if table == nil {
		return nil, apperr.NotFound("table")
	}

	floor, _ := s.repo.Floor.FindByID(ctx, table.FloorID)
	resp := response.TableToResponse(table, floor)
	return &resp, nil
}

func (s *catalogService) ListTablesByFloor(ctx context.Context, floorID int) ([]response.TableResponse, error) {
	floor, err := s.repo.Floor.FindByID(ctx, floorID)
	if err != nil {
		return nil, apperr.Internal("check floor", err)
	}
	if floor == nil {
		return nil, apperr.NotFound("floor")
	}

	tables, err := s.repo.Table.FindByFloor(ctx, floorID)
	if err != nil {
		s.log.Error("Failed to list tables by floor",
			zap.Error(err),
			zap.Int("floor_id", floorID),
		)
		return nil, apperr.Internal("list tables by floor", err)
	}

	result := make([]response.TableResponse, len(tables))
	for i, table := range tables {
		result[i] = response.TableToResponse(table, floor)
	}

	return result, nil
}

func (s *catalogService) ListTimeslots(ctx context.Context) ([]response.TimeslotResponse, error) {
	timeslots, err := s.repo.Timeslot.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list timeslots", zap.Error(err))
		return nil, apperr.Internal("list timeslots", err)
	}

	result := make([]response.TimeslotResponse, len(timeslots))
	for i, ts := range timeslots {
		result[i] = response.TimeslotToResponse(ts)
	}

	return result, nil
}

func (s *catalogService) GetTimeslot(ctx context.Context, timeslotID int) (*response.TimeslotResponse, error) {
	ts, err := s.repo.Timeslot.FindByID(ctx, timeslotID)
	if err != nil {
		s.log.Error("Failed to get timeslot",
			zap.Error(err),
			zap.Int("timeslot_id", timeslotID),
		)
		return nil, apperr.Internal("get timeslot", err)
	}
	if ts == nil {
		return nil, apperr.NotFound("timeslot")
	}

	resp := response.TimeslotToResponse(ts)
	return &resp, nil
}

func (s *catalogService) ListTablesForTimeslot(ctx context.Context, timeslotID int) ([]response.TableAvailabilityResponse, error) {
	ts, err := s.repo.Timeslot.FindByID(ctx, timeslotID)
	if err != nil {
		return nil, apperr.Internal("check timeslot", err)
	}
	if ts == nil {
		return nil, apperr.NotFound("timeslot")
	}

	tables, err := s.repo.Table.FindActiveWithStatus(ctx, timeslotID)
	if err != nil {
		s.log.Error("Failed to list tables for timeslot",
			zap.Error(err),
			zap.Int("timeslot_id", timeslotID),
		)
		return nil, apperr.Internal("list tables for timeslot", err)
	}

	result := make([]response.TableAvailabilityResponse, len(tables))
	for i, table := range tables {
		result[i] = response.TableAvailabilityToResponse(table)
	}

	return result, nil
}
