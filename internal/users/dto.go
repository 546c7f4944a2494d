package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/avillagomez/backoffice-backend/pkg/db/models"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
)

// UserDTO is the staff account payload returned to clients.
type UserDTO struct {
	ID        uuid.UUID      `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	Role      enums.UserRole `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
}

// RegisterInput holds the validated payload for creating an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     enums.UserRole
}

// LoginInput carries the credentials plus the caller's address for
// rate limiting.
type LoginInput struct {
	Username string
	Password string
	ClientIP string
}

// TokenPair is the minted access/refresh pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse bundles the tokens with the authenticated user.
type LoginResponse struct {
	TokenPair
	User *UserDTO `json:"user"`
}

// RefreshInput pairs the expiring access token with its refresh token.
type RefreshInput struct {
	AccessToken  string
	RefreshToken string
}

// FromModel maps the persisted user.
func FromModel(user *models.User) *UserDTO {
	return &UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
