package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mysticum/wms/internal/domain/catalog"
)

// DocumentTypeModel is the persistence model for a document type catalog
// entry. The behavioral capability fields (effect class, default-cell
// targeting, order flag) are not persisted: repositories resolve them from
// the symbol after loading.
type DocumentTypeModel struct {
	BaseModel
	Group                string `gorm:"type:varchar(50);not null;index"`
	Symbol               string `gorm:"type:varchar(10);not null;uniqueIndex"`
	Name                 string `gorm:"type:varchar(255);not null"`
	Description          string `gorm:"type:varchar(500)"`
	IsFixing             bool   `gorm:"not null;default:false"`
	RequiresVerification bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (DocumentTypeModel) TableName() string {
	return "document_types"
}

// ToDomain converts the persistence model to a domain DocumentType with its
// capabilities resolved.
func (m *DocumentTypeModel) ToDomain() *catalog.DocumentType {
	t := &catalog.DocumentType{
		BaseEntity:           m.BaseModel.ToDomain(),
		Group:                m.Group,
		Symbol:               m.Symbol,
		Name:                 m.Name,
		Description:          m.Description,
		IsFixing:             m.IsFixing,
		RequiresVerification: m.RequiresVerification,
	}
	t.ResolveCapabilities()
	return t
}

// FromDomain populates the persistence model from a domain DocumentType.
func (m *DocumentTypeModel) FromDomain(t *catalog.DocumentType) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Group = t.Group
	m.Symbol = t.Symbol
	m.Name = t.Name
	m.Description = t.Description
	m.IsFixing = t.IsFixing
	m.RequiresVerification = t.RequiresVerification
}

// StatusModel is the persistence model for a per-type status catalog entry.
type StatusModel struct {
	BaseModel
	Name           string    `gorm:"type:varchar(50);not null"`
	DocumentTypeID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (StatusModel) TableName() string {
	return "statuses"
}

// ToDomain converts the persistence model to a domain Status.
func (m *StatusModel) ToDomain() *catalog.Status {
	return &catalog.Status{
		BaseEntity:     m.BaseModel.ToDomain(),
		Name:           m.Name,
		DocumentTypeID: m.DocumentTypeID,
	}
}

// FromDomain populates the persistence model from a domain Status.
func (m *StatusModel) FromDomain(s *catalog.Status) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	m.DocumentTypeID = s.DocumentTypeID
}

// ProductModel is the persistence model for a catalog product.
type ProductModel struct {
	BaseModel
	Name               string          `gorm:"type:varchar(255);not null"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Weight             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	EAN                string          `gorm:"type:varchar(20);index"`
	SKU                string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description        string          `gorm:"type:varchar(1000)"`
	PackageOfProductID *uuid.UUID      `gorm:"type:uuid"`
	PackageMaxQuantity *int            `gorm:""`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:         m.BaseModel.ToDomain(),
		Name:               m.Name,
		UnitPrice:          m.UnitPrice,
		Weight:             m.Weight,
		EAN:                m.EAN,
		SKU:                m.SKU,
		Description:        m.Description,
		PackageOfProductID: m.PackageOfProductID,
		PackageMaxQuantity: m.PackageMaxQuantity,
	}
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.UnitPrice = p.UnitPrice
	m.Weight = p.Weight
	m.EAN = p.EAN
	m.SKU = p.SKU
	m.Description = p.Description
	m.PackageOfProductID = p.PackageOfProductID
	m.PackageMaxQuantity = p.PackageMaxQuantity
}
