package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mysticum/wms/internal/domain/shared"
)

// Lot is one quantity-bearing stock record: all units of a product that
// share a cell, expiration date and serial live in a single row. Postings
// adjust Quantity; a lot drained to zero is removed.
type Lot struct {
	shared.BaseEntity
	ProductID        uuid.UUID
	CellID           uuid.UUID
	Quantity         int64
	UnitPrice        decimal.Decimal
	ExpirationDate   *time.Time
	Serial           string
	SourceDocumentID uuid.UUID
}

// NewLot creates a stock lot from the first additive posting that touches
// its key.
func NewLot(productID, cellID uuid.UUID, quantity int64, unitPrice decimal.Decimal, expirationDate *time.Time, serial string, sourceDocumentID uuid.UUID, now time.Time) (*Lot, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Lot product cannot be empty")
	}
	if cellID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Lot cell cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainErrorf("VALIDATION_ERROR", "lot for product %s: quantity must be positive", productID)
	}
	return &Lot{
		BaseEntity:       shared.NewBaseEntityAt(now),
		ProductID:        productID,
		CellID:           cellID,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		ExpirationDate:   expirationDate,
		Serial:           serial,
		SourceDocumentID: sourceDocumentID,
	}, nil
}

// SameKey reports whether another posting targets this lot.
func (l *Lot) SameKey(productID, cellID uuid.UUID, expirationDate *time.Time, serial string) bool {
	if l.ProductID != productID || l.CellID != cellID || l.Serial != serial {
		return false
	}
	switch {
	case l.ExpirationDate == nil && expirationDate == nil:
		return true
	case l.ExpirationDate == nil || expirationDate == nil:
		return false
	default:
		return l.ExpirationDate.Equal(*expirationDate)
	}
}
