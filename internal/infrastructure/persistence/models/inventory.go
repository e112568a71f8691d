package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mysticum/wms/internal/domain/inventory"
)

// LotModel is the persistence model for a stock lot. The composite index
// mirrors the lot identity key: one quantity-bearing row per product, cell,
// expiration date and serial.
type LotModel struct {
	BaseModel
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_lot_key,priority:1"`
	CellID           uuid.UUID       `gorm:"type:uuid;not null;index:idx_lot_key,priority:2"`
	Quantity         int64           `gorm:"not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExpirationDate   *time.Time      `gorm:"type:date;index:idx_lot_key,priority:3"`
	Serial           string          `gorm:"type:varchar(100);index:idx_lot_key,priority:4"`
	SourceDocumentID uuid.UUID       `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (LotModel) TableName() string {
	return "lots"
}

// ToDomain converts the persistence model to a domain Lot.
func (m *LotModel) ToDomain() *inventory.Lot {
	return &inventory.Lot{
		BaseEntity:       m.BaseModel.ToDomain(),
		ProductID:        m.ProductID,
		CellID:           m.CellID,
		Quantity:         m.Quantity,
		UnitPrice:        m.UnitPrice,
		ExpirationDate:   m.ExpirationDate,
		Serial:           m.Serial,
		SourceDocumentID: m.SourceDocumentID,
	}
}

// FromDomain populates the persistence model from a domain Lot.
func (m *LotModel) FromDomain(l *inventory.Lot) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.ProductID = l.ProductID
	m.CellID = l.CellID
	m.Quantity = l.Quantity
	m.UnitPrice = l.UnitPrice
	m.ExpirationDate = l.ExpirationDate
	m.Serial = l.Serial
	m.SourceDocumentID = l.SourceDocumentID
}

// LotModelFromDomain creates a new persistence model from a domain Lot.
func LotModelFromDomain(l *inventory.Lot) *LotModel {
	m := &LotModel{}
	m.FromDomain(l)
	return m
}
