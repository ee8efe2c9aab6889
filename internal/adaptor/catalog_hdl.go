package adaptor

import (
	"net/http"
	"strconv"

	"table-reservation/internal/usecase"
	"table-reservation/pkg/apperr"
	"table-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListTables handles GET /api/tables
func (h *CatalogHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.service.ListTables(r.Context())
	if err != nil {
		h.writeError(w, err, "list tables")
		return
	}

	utils.ResponseSuccess(w, "success", tables)
}

// GetTable handles GET /api/table/{table_id}
func (h *CatalogHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	tableID, ok := h.parseIDParam(w, r, "table_id")
	if !ok {
		return
	}

	table, err := h.service.GetTable(r.Context(), tableID)
	if err != nil {
		h.writeError(w, err, "get table")
		return
	}

	utils.ResponseSuccess(w, "success", table)
}

// ListTablesByFloor handles GET /api/floor/{floor_id}/tables
func (h *CatalogHandler) ListTablesByFloor(w http.ResponseWriter, r *http.Request) {
	floorID, ok := h.parseIDParam(w, r, "floor_id")
	if !ok {
		return
	}

	tables, err := h.service.ListTablesByFloor(r.Context(), floorID)
	if err != nil {
		h.writeError(w, err, "list tables by floor")
		return
	}

	utils.ResponseSuccess(w, "success", tables)
}

// ListTimeslots handles GET /api/timeslots
func (h *CatalogHandler) ListTimeslots(w http.ResponseWriter, r *http.Request) {
	timeslots, err := h.service.ListTimeslots(r.Context())
	if err != nil {
		h.writeError(w, err, "list timeslots")
		return
	}

	utils.ResponseSuccess(w, "success", timeslots)
}

// GetTimeslot handles GET /api/timeslot/{timeslot_id}
func (h *CatalogHandler) GetTimeslot(w http.ResponseWriter, r *http.Request) {
	timeslotID, ok := h.parseIDParam(w, r, "timeslot_id")
	if !ok {
		return
	}

	timeslot, err := h.service.GetTimeslot(r.Context(), timeslotID)
	if err != nil {
		h.writeError(w, err, "get timeslot")
		return
	}

	utils.ResponseSuccess(w, "success", timeslot)
}

// ListTablesForTimeslot handles GET /api/timeslot/{timeslot_id}/tables
func (h *CatalogHandler) ListTablesForTimeslot(w http.ResponseWriter, r *http.Request) {
	timeslotID, ok := h.parseIDParam(w, r, "timeslot_id")
	if !ok {
		return
	}

	tables, err := h.service.ListTablesForTimeslot(r.Context(), timeslotID)
	if err != nil {
		h.writeError(w, err, "list tables for timeslot")
		return
	}

	utils.ResponseSuccess(w, "success", tables)
}

func (h *CatalogHandler) parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		utils.ResponseBadRequest(w, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}

func (h *CatalogHandler) writeError(w http.ResponseWriter, err error, operation string) {
	appErr := apperr.From(err)
	if appErr.Code == apperr.CodeInternal {
		h.log.Error("Failed to "+operation, zap.Error(err))
	} else {
		h.log.Warn(operation+" rejected",
			zap.String("code", appErr.Code),
			zap.String("message", appErr.Message),
		)
	}
	utils.ResponseAppError(w, err)
}
