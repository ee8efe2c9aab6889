package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"table-reservation/internal/dto/request"
	"table-reservation/internal/usecase"
	"table-reservation/pkg/apperr"
	"table-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// Create handles POST /api/reservation
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "Reservation created successfully", result)
}

// CheckIn handles POST /api/reservation/{id}/checkin
func (h *ReservationHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	var req request.CheckInRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.CheckIn(r.Context(), reservationID, &req)
	if err != nil {
		h.writeError(w, err, "check in")
		return
	}

	utils.ResponseSuccess(w, "Checked in successfully", result)
}

// CheckOut handles POST /api/reservation/{id}/checkout
func (h *ReservationHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	var req request.CheckOutRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.CheckOut(r.Context(), reservationID, &req)
	if err != nil {
		h.writeError(w, err, "check out")
		return
	}

	utils.ResponseSuccess(w, "Checked out successfully", result)
}

// Cancel handles POST /api/reservation/{id}/cancel
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	var req request.CancelRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Cancel(r.Context(), reservationID, &req)
	if err != nil {
		h.writeError(w, err, "cancel reservation")
		return
	}

	utils.ResponseSuccess(w, "Reservation cancelled successfully", result)
}

// GetActive handles GET /api/reservation/active/{user_id}
func (h *ReservationHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	result, err := h.service.GetActiveForUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, err, "get active reservation")
		return
	}

	if result == nil {
		utils.ResponseSuccess(w, "No active reservation found for this user", nil)
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// GetHistory handles GET /api/reservation/history/{user_id}?limit=50
func (h *ReservationHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	limit := utils.ParseInt(r.URL.Query().Get("limit"), 50)

	result, err := h.service.GetHistoryForUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, err, "get reservation history")
		return
	}

	if len(result) > limit {
		result = result[:limit]
	}

	utils.ResponseSuccess(w, "success", result)
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, err error, operation string) {
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

// decodeOptionalBody decodes a JSON body when one is present. Lifecycle
// endpoints accept an empty body.
func decodeOptionalBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
