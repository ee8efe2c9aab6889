package response

import (
	"time"

	"table-reservation/internal/data/entity"
)

type UserResponse struct {
	UserID    string          `json:"user_id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	UserType  entity.UserType `json:"user_type"`
	CreatedAt time.Time       `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Email:     user.Email,
		Name:      user.Name,
		UserType:  user.UserType,
		CreatedAt: user.CreatedAt,
	}
}
