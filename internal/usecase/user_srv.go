package usecase

import (
	"context"
	"time"

	"table-reservation/internal/data/entity"
	"table-reservation/internal/data/repository"
	"table-reservation/internal/dto/request"
	"table-reservation/internal/dto/response"
	"table-reservation/pkg/apperr"
	"table-reservation/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	// VerifyOrCreate upserts the identity resolved by the OAuth frontend:
	// insert on first sight, no-op afterwards.
	VerifyOrCreate(ctx context.Context, req *request.VerifyOrCreateRequest) (*response.UserResponse, error)
	GetByID(ctx context.Context, userID string) (*response.UserResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) VerifyOrCreate(ctx context.Context, req *request.VerifyOrCreateRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify or create validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed", validationDetails(errs))
	}

	user := &entity.User{
		UserID:    req.UserID,
		Email:     req.Email,
		Name:      req.Name,
		UserType:  entity.UserTypeStudent,
		CreatedAt: time.Now(),
	}

	if err := s.repo.User.Upsert(ctx, user); err != nil {
		s.log.Error("Failed to upsert user",
			zap.Error(err),
			zap.String("user_id", req.UserID),
		)
		return nil, apperr.Internal("verify or create user", err)
	}

	// Read back so the response reflects the stored row, not the request
	// (an existing user keeps their original profile).
	stored, err := s.repo.User.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, apperr.Internal("load user after upsert", err)
	}
	if stored == nil {
		return nil, apperr.Internal("user missing after upsert", nil)
	}

	s.log.Info("User verified",
		zap.String("user_id", stored.UserID),
		zap.String("email", stored.Email),
	)

	resp := response.UserToResponse(stored)
	return &resp, nil
}

func (s *userService) GetByID(ctx context.Context, userID string) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, apperr.Internal("get user", err)
	}
	if user == nil {
		return nil, apperr.NotFoundWithID("user", userID)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
