package models

import (
	"github.com/google/uuid"

	"github.com/mysticum/wms/internal/domain/identity"
)

// UserModel is the persistence model for a staff account.
type UserModel struct {
	BaseModel
	Login        string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FirstName    string    `gorm:"type:varchar(100)"`
	LastName     string    `gorm:"type:varchar(100)"`
	Role         string    `gorm:"type:varchar(10);not null"`
	WarehouseID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Active       bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Login:        m.Login,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Role:         identity.Role(m.Role),
		WarehouseID:  m.WarehouseID,
		Active:       m.Active,
	}
}

// FromDomain populates the persistence model from a domain User.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Login = u.Login
	m.PasswordHash = u.PasswordHash
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Role = string(u.Role)
	m.WarehouseID = u.WarehouseID
	m.Active = u.Active
}
