package wire

import (
	"table-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, handler *adaptor.CatalogHandler) {
	// GET /api/tables - All tables with floor info
	r.Get("/api/tables", handler.ListTables)

	// GET /api/table/{table_id} - One table with floor info
	r.Get("/api/table/{table_id}", handler.GetTable)

	// GET /api/floor/{floor_id}/tables - Tables on a floor
	r.Get("/api/floor/{floor_id}/tables", handler.ListTablesByFloor)

	// GET /api/timeslots - All timeslots
	r.Get("/api/timeslots", handler.ListTimeslots)

	// GET /api/timeslot/{timeslot_id} - One timeslot
	r.Get("/api/timeslot/{timeslot_id}", handler.GetTimeslot)

	// GET /api/timeslot/{timeslot_id}/tables - Active tables with occupancy status
	r.Get("/api/timeslot/{timeslot_id}/tables", handler.ListTablesForTimeslot)
}
