package adaptor

import (
	"encoding/json"
	"net/http"

	"table-reservation/internal/dto/request"
	"table-reservation/internal/usecase"
	"table-reservation/pkg/apperr"
	"table-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// VerifyOrCreate handles POST /api/user/verify-or-create
func (h *UserHandler) VerifyOrCreate(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOrCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.service.VerifyOrCreate(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "verify or create user")
		return
	}

	utils.ResponseSuccess(w, "User verified successfully", user)
}

// GetByID handles GET /api/user/{user_id}
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		h.writeError(w, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

func (h *UserHandler) writeError(w http.ResponseWriter, err error, operation string) {
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
