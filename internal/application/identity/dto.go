package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/mysticum/wms/internal/domain/identity"
)

// LoginRequest carries staff credentials.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is a successful authentication result.
type LoginResponse struct {
	AccessToken          string       `json:"access_token"`
	RefreshToken         string       `json:"refresh_token"`
	AccessTokenExpiresAt time.Time    `json:"access_token_expires_at"`
	User                 UserResponse `json:"user"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RegisterUserRequest creates a staff account.
type RegisterUserRequest struct {
	Login       string    `json:"login" binding:"required,min=3,max=64"`
	Password    string    `json:"password" binding:"required,min=8"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        string    `json:"role" binding:"required,oneof=ADM VED ZAM PRC"`
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
}

// UserResponse is a staff account in API responses.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Login       string    `json:"login"`
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	Role        string    `json:"role"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToUserResponse converts a domain user to its API representation.
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Login:       u.Login,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        string(u.Role),
		WarehouseID: u.WarehouseID,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt,
	}
}
