package wire

import (
	"table-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReservation(r chi.Router, handler *adaptor.ReservationHandler) {
	// POST /api/reservation - Create a new reservation
	r.Post("/api/reservation", handler.Create)

	r.Route("/api/reservation/{id}", func(r chi.Router) {
		// POST /api/reservation/{id}/checkin - Arrive at the tables
		r.Post("/checkin", handler.CheckIn)

		// POST /api/reservation/{id}/checkout - Release the tables
		r.Post("/checkout", handler.CheckOut)

		// POST /api/reservation/{id}/cancel - Cancel before check-in
		r.Post("/cancel", handler.Cancel)
	})

	// GET /api/reservation/active/{user_id} - Single active reservation
	r.Get("/api/reservation/active/{user_id}", handler.GetActive)

	// GET /api/reservation/history/{user_id} - Terminal reservations
	r.Get("/api/reservation/history/{user_id}", handler.GetHistory)
}
