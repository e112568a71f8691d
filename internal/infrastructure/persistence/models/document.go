package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mysticum/wms/internal/domain/document"
)

// DocumentModel is the persistence model for the Document aggregate root.
type DocumentModel struct {
	AggregateModel
	TypeID     uuid.UUID `gorm:"type:uuid;not null;index"`
	TypeSymbol string    `gorm:"type:varchar(10);not null;index"`
	Number     int       `gorm:"not null"`
	Barcode    string    `gorm:"type:varchar(100);not null;uniqueIndex"`

	OriginDepartmentID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	DestinationDepartmentID *uuid.UUID `gorm:"type:uuid"`
	OriginCellID            *uuid.UUID `gorm:"type:uuid"`
	DestinationCellID       *uuid.UUID `gorm:"type:uuid"`

	CurrentStatus string          `gorm:"type:varchar(20);not null;index"`
	TotalQuantity int64           `gorm:"not null;default:0"`
	TotalWeight   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	Address string `gorm:"type:varchar(500)"`
	Carrier string `gorm:"type:varchar(255)"`

	LinkedDocumentID *uuid.UUID `gorm:"type:uuid;index"`

	StartedAt *time.Time
	EndedAt   *time.Time
	PostedAt  *time.Time

	RequiredAt   *time.Time
	CreatedByID  uuid.UUID  `gorm:"type:uuid;not null"`
	VerifiedByID *uuid.UUID `gorm:"type:uuid"`
	Description  string     `gorm:"type:varchar(1000)"`

	// Associations
	Committee     []CommitteeMemberModel `gorm:"foreignKey:DocumentID;references:ID"`
	StatusHistory []StatusChangeModel    `gorm:"foreignKey:DocumentID;references:ID"`
	Items         []LineItemModel        `gorm:"foreignKey:DocumentID;references:ID"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document.
func (m *DocumentModel) ToDomain() *document.Document {
	d := &document.Document{
		TypeID:                  m.TypeID,
		TypeSymbol:              m.TypeSymbol,
		Number:                  m.Number,
		Barcode:                 m.Barcode,
		OriginDepartmentID:      m.OriginDepartmentID,
		DestinationDepartmentID: m.DestinationDepartmentID,
		OriginCellID:            m.OriginCellID,
		DestinationCellID:       m.DestinationCellID,
		CurrentStatus:           document.Status(m.CurrentStatus),
		TotalQuantity:           m.TotalQuantity,
		TotalWeight:             m.TotalWeight,
		TotalPrice:              m.TotalPrice,
		Address:                 m.Address,
		Carrier:                 m.Carrier,
		LinkedDocumentID:        m.LinkedDocumentID,
		StartedAt:               m.StartedAt,
		EndedAt:                 m.EndedAt,
		PostedAt:                m.PostedAt,
		RequiredAt:              m.RequiredAt,
		CreatedByID:             m.CreatedByID,
		VerifiedByID:            m.VerifiedByID,
		Description:             m.Description,
		Committee:               make([]uuid.UUID, len(m.Committee)),
		StatusHistory:           make([]document.StatusChange, len(m.StatusHistory)),
		Items:                   make([]document.LineItem, len(m.Items)),
	}
	m.PopulateAggregateRoot(&d.BaseAggregateRoot)
	for i, member := range m.Committee {
		d.Committee[i] = member.UserID
	}
	for i, change := range m.StatusHistory {
		d.StatusHistory[i] = *change.ToDomain()
	}
	for i, item := range m.Items {
		d.Items[i] = *item.ToDomain()
	}
	return d
}

// FromDomain populates the persistence model from a domain Document.
func (m *DocumentModel) FromDomain(d *document.Document) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.TypeID = d.TypeID
	m.TypeSymbol = d.TypeSymbol
	m.Number = d.Number
	m.Barcode = d.Barcode
	m.OriginDepartmentID = d.OriginDepartmentID
	m.DestinationDepartmentID = d.DestinationDepartmentID
	m.OriginCellID = d.OriginCellID
	m.DestinationCellID = d.DestinationCellID
	m.CurrentStatus = string(d.CurrentStatus)
	m.TotalQuantity = d.TotalQuantity
	m.TotalWeight = d.TotalWeight
	m.TotalPrice = d.TotalPrice
	m.Address = d.Address
	m.Carrier = d.Carrier
	m.LinkedDocumentID = d.LinkedDocumentID
	m.StartedAt = d.StartedAt
	m.EndedAt = d.EndedAt
	m.PostedAt = d.PostedAt
	m.RequiredAt = d.RequiredAt
	m.CreatedByID = d.CreatedByID
	m.VerifiedByID = d.VerifiedByID
	m.Description = d.Description

	m.Committee = make([]CommitteeMemberModel, len(d.Committee))
	for i, userID := range d.Committee {
		m.Committee[i] = CommitteeMemberModel{DocumentID: d.ID, UserID: userID}
	}
	m.StatusHistory = make([]StatusChangeModel, len(d.StatusHistory))
	for i := range d.StatusHistory {
		m.StatusHistory[i] = *StatusChangeModelFromDomain(&d.StatusHistory[i])
	}
	m.Items = make([]LineItemModel, len(d.Items))
	for i := range d.Items {
		m.Items[i] = *LineItemModelFromDomain(&d.Items[i])
	}
}

// DocumentModelFromDomain creates a new persistence model from a domain Document.
func DocumentModelFromDomain(d *document.Document) *DocumentModel {
	m := &DocumentModel{}
	m.FromDomain(d)
	return m
}

// LineItemModel is the persistence model for a document line item.
type LineItemModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	DocumentID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_line_item_document_product,priority:1"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_line_item_document_product,priority:2"`
	AmountRequired int64           `gorm:"not null"`
	AmountAdded    *int64          `gorm:""`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CellID         *uuid.UUID      `gorm:"type:uuid"`
	ExpirationDate *time.Time      `gorm:"type:date"`
	Serial         string          `gorm:"type:varchar(100)"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LineItemModel) TableName() string {
	return "line_items"
}

// ToDomain converts the persistence model to a domain LineItem.
func (m *LineItemModel) ToDomain() *document.LineItem {
	return &document.LineItem{
		ID:             m.ID,
		DocumentID:     m.DocumentID,
		ProductID:      m.ProductID,
		AmountRequired: m.AmountRequired,
		AmountAdded:    m.AmountAdded,
		UnitPrice:      m.UnitPrice,
		CellID:         m.CellID,
		ExpirationDate: m.ExpirationDate,
		Serial:         m.Serial,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// LineItemModelFromDomain creates a new persistence model from a domain LineItem.
func LineItemModelFromDomain(i *document.LineItem) *LineItemModel {
	return &LineItemModel{
		ID:             i.ID,
		DocumentID:     i.DocumentID,
		ProductID:      i.ProductID,
		AmountRequired: i.AmountRequired,
		AmountAdded:    i.AmountAdded,
		UnitPrice:      i.UnitPrice,
		CellID:         i.CellID,
		ExpirationDate: i.ExpirationDate,
		Serial:         i.Serial,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

// StatusChangeModel is the persistence model for one audit-trail entry.
type StatusChangeModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	DocumentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"type:varchar(20);not null"`
	UserID      uuid.UUID `gorm:"type:uuid;not null"`
	Description string    `gorm:"type:varchar(500)"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StatusChangeModel) TableName() string {
	return "status_changes"
}

// ToDomain converts the persistence model to a domain StatusChange.
func (m *StatusChangeModel) ToDomain() *document.StatusChange {
	return &document.StatusChange{
		ID:          m.ID,
		DocumentID:  m.DocumentID,
		Status:      document.Status(m.Status),
		UserID:      m.UserID,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

// StatusChangeModelFromDomain creates a new persistence model from a domain StatusChange.
func StatusChangeModelFromDomain(c *document.StatusChange) *StatusChangeModel {
	return &StatusChangeModel{
		ID:          c.ID,
		DocumentID:  c.DocumentID,
		Status:      string(c.Status),
		UserID:      c.UserID,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// CommitteeMemberModel joins documents to the users attached to them.
type CommitteeMemberModel struct {
	DocumentID uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID     uuid.UUID `gorm:"type:uuid;primary_key"`
}

// TableName returns the table name for GORM
func (CommitteeMemberModel) TableName() string {
	return "document_committee_members"
}

// DocumentSequenceModel holds the last assigned number per numbering scope.
// Rows are upserted atomically by the sequence repository.
type DocumentSequenceModel struct {
	TypeSymbol   string    `gorm:"type:varchar(10);primary_key"`
	DepartmentID uuid.UUID `gorm:"type:uuid;primary_key"`
	Year         int       `gorm:"primary_key"`
	LastNumber   int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (DocumentSequenceModel) TableName() string {
	return "document_sequences"
}
