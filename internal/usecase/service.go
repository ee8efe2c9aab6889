package usecase

import (
	"table-reservation/internal/data/repository"

	"go.uber.org/zap"
)

type Service struct {
	User        UserService
	Catalog     CatalogService
	Reservation ReservationService
}

func NewService(store *repository.Store, log *zap.Logger) *Service {
	return &Service{
		User:        NewUserService(store.Repository, log),
		Catalog:     NewCatalogService(store.Repository, log),
		Reservation: NewReservationService(store.Repository, store, log),
	}
}
