package repository

import (
	"context"
	"fmt"

	"table-reservation/internal/data/entity"
	"table-reservation/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Upsert(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, userID string) (*entity.User, error)

	// LockByID takes a row lock on the user, serializing concurrent
	// reservation creates for the same user. Must run inside a transaction.
	LockByID(ctx context.Context, userID string) (*entity.User, error)
}

type userRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewUserRepository(db database.Querier, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

func (r *userRepository) Upsert(ctx context.Context, user *entity.User) error {
	// Insert on first sight, no-op afterwards: the external key and the
	// profile captured with it are immutable.
	query := `
		INSERT INTO users (user_id, email, name, user_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Email,
		user.Name,
		user.UserType,
		user.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert user",
			zap.Error(err),
			zap.String("user_id", user.UserID),
		)
		return fmt.Errorf("upsert user %s: %w", user.UserID, err)
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, userID string) (*entity.User, error) {
	query := `
		SELECT user_id, email, name, user_type, created_at
		FROM users
		WHERE user_id = $1
	`

	return r.scanOne(ctx, query, userID)
}

func (r *userRepository) LockByID(ctx context.Context, userID string) (*entity.User, error) {
	query := `
		SELECT user_id, email, name, user_type, created_at
		FROM users
		WHERE user_id = $1
		FOR UPDATE
	`

	return r.scanOne(ctx, query, userID)
}

func (r *userRepository) scanOne(ctx context.Context, query, userID string) (*entity.User, error) {
	var user entity.User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.UserID,
		&user.Email,
		&user.Name,
		&user.UserType,
		&user.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", userID, err)
	}

	return &user, nil
}
