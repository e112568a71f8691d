package identity

import (
	"github.com/google/uuid"

	"github.com/mysticum/wms/internal/domain/shared"
)

// Role is a warehouse staff role code.
type Role string

const (
	RoleAdmin         Role = "ADM" // administrator
	RoleManager       Role = "VED" // department manager
	RoleDeputyManager Role = "ZAM" // deputy manager
	RoleWorker        Role = "PRC" // warehouse worker
)

// IsManagerial reports whether the role may create verification-required
// document types. The check is enforced on every such creation; there is no
// configuration switch to turn it off.
func (r Role) IsManagerial() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleDeputyManager:
		return true
	}
	return false
}

// User is a warehouse staff account. The core only needs the identity and
// role; credential handling lives in the infrastructure auth service.
type User struct {
	shared.BaseEntity
	Login        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	WarehouseID  uuid.UUID
	Active       bool
}

// NewUser creates a staff account.
func NewUser(login, passwordHash string, role Role, warehouseID uuid.UUID) (*User, error) {
	if login == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Login cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Password hash cannot be empty")
	}
	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Login:        login,
		PasswordHash: passwordHash,
		Role:         role,
		WarehouseID:  warehouseID,
		Active:       true,
	}, nil
}

// FullName returns the display name of the user.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Login
	}
	return u.FirstName + " " + u.LastName
}
