package request

// VerifyOrCreateRequest carries the identity resolved by the OAuth frontend.
type VerifyOrCreateRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Name   string `json:"name" validate:"required"`
}
