package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository provides access to staff accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByLogin(ctx context.Context, login string) (*User, error)
	Save(ctx context.Context, u *User) error
}
