package adaptor

import (
	"table-reservation/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	User        *UserHandler
	Catalog     *CatalogHandler
	Reservation *ReservationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		User:        NewUserHandler(service.User, log),
		Catalog:     NewCatalogHandler(service.Catalog, log),
		Reservation: NewReservationHandler(service.Reservation, log),
	}
}
