package wire

import (
	"table-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, handler *adaptor.UserHandler) {
	// POST /api/user/verify-or-create - Upsert identity from OAuth frontend
	r.Post("/api/user/verify-or-create", handler.VerifyOrCreate)

	// GET /api/user/{user_id} - Fetch a user profile
	r.Get("/api/user/{user_id}", handler.GetByID)
}
