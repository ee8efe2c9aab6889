package response

import (
	"table-reservation/internal/data/entity"
	"table-reservation/internal/data/repository"
)

type FloorResponse struct {
	FloorID   int    `json:"floor_id"`
	Name      string `json:"name"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type TableResponse struct {
	TableID     int            `json:"table_id"`
	TableCode   string         `json:"table_code"`
	Capacity    int            `json:"capacity"`
	MinCapacity int            `json:"min_capacity"`
	IsActive    bool           `json:"is_active"`
	FloorID     int            `json:"floor_id"`
	Floor       *FloorResponse `json:"floor,omitempty"`
}

type TimeslotResponse struct {
	TimeslotID int    `json:"timeslot_id"`
	SlotID     string `json:"slot_id"`
	StartAt    string `json:"start_at"`
	EndAt      string `json:"end_at"`
}

// TableAvailabilityResponse flattens a table with its occupancy status for
// one timeslot.
type TableAvailabilityResponse struct {
	TableID     int                `json:"table_id"`
	TableCode   string             `json:"table_code"`
	Capacity    int                `json:"capacity"`
	MinCapacity int                `json:"min_capacity"`
	Status      entity.TableStatus `json:"status"`
}

func FloorToResponse(floor *entity.Floor) FloorResponse {
	return FloorResponse{
		FloorID:   floor.FloorID,
		Name:      floor.Name,
		OpenTime:  floor.OpenTime.Format("15:04"),
		CloseTime: floor.CloseTime.Format("15:04"),
	}
}

func TableToResponse(table *entity.Table, floor *entity.Floor) TableResponse {
	resp := TableResponse{
		TableID:     table.TableID,
		TableCode:   table.TableCode,
		Capacity:    table.Capacity,
		MinCapacity: table.MinCapacity,
		IsActive:    table.IsActive,
		FloorID:     table.FloorID,
	}
	if floor != nil {
		floorResp := FloorToResponse(floor)
		resp.Floor = &floorResp
	}
	return resp
}

func TimeslotToResponse(ts *entity.Timeslot) TimeslotResponse {
	return TimeslotResponse{
		TimeslotID: ts.TimeslotID,
		SlotID:     ts.SlotID,
		StartAt:    ts.StartAt.Format("15:04"),
		EndAt:      ts.EndAt.Format("15:04"),
	}
}

func TableAvailabilityToResponse(ts *repository.TableWithStatus) TableAvailabilityResponse {
	return TableAvailabilityResponse{
		TableID:     ts.Table.TableID,
		TableCode:   ts.Table.TableCode,
		Capacity:    ts.Table.Capacity,
		MinCapacity: ts.Table.MinCapacity,
		Status:      ts.Status,
	}
}
