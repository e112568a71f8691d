package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mysticum/wms/internal/domain/shared"
)

// Linker propagates quantities between paired documents: a response document
// fulfills the order it is linked to, and a closing inventory count is
// compared line by line against what the count order expected.
type Linker struct{}

// NewLinker creates a Linker.
func NewLinker() *Linker {
	return &Linker{}
}

// ApplyFulfillment adds each response line's required amount to the matching
// order line's fulfilled amount. Partial fulfillment is legal and common:
// an order for 10 answered by a response for 4 leaves 6 outstanding. A
// response line whose product is absent from the order is rejected outright.
func (l *Linker) ApplyFulfillment(response, order *Document, now time.Time) error {
	if order == nil {
		return shared.NewDomainErrorf("VALIDATION_ERROR", "document %s has no order to fulfill", response.Barcode)
	}
	for i := range response.Items {
		line := &response.Items[i]
		target, ok := order.ItemByProduct(line.ProductID)
		if !ok {
			return shared.NewDomainErrorf("ORPHAN_LINE_ITEM", "product %s on document %s does not appear on order %s", line.ProductID, response.Barcode, order.Barcode)
		}
		target.AddFulfilled(line.AmountRequired, now)
	}
	order.UpdatedAt = now
	return nil
}

// Outstanding returns the per-product quantities still unfulfilled on an
// order document.
func (l *Linker) Outstanding(order *Document) map[uuid.UUID]int64 {
	out := make(map[uuid.UUID]int64)
	for i := range order.Items {
		line := &order.Items[i]
		if rem := line.AmountRequired - line.Fulfilled(); rem > 0 {
			out[line.ProductID] = rem
		}
	}
	return out
}

// CountDeviation is one line of the difference between a closed inventory
// count and the recorded stock it was counted against.
type CountDeviation struct {
	ProductID      uuid.UUID
	Quantity       int64
	UnitPrice      decimal.Decimal
	CellID         *uuid.UUID
	ExpirationDate *time.Time
	Serial         string
}

// CountClosure is the result of closing an inventory count order: surpluses
// become an additive fixing document, shortages a subtractive one. Either
// list may be empty; a count that matched the books exactly produces none.
type CountClosure struct {
	Surplus  []CountDeviation
	Shortage []CountDeviation
}

// CloseCount compares the fulfilled (counted) amounts on a count order
// against the required (expected) amounts and splits the differences into
// surplus and shortage lines.
func (l *Linker) CloseCount(order *Document) CountClosure {
	var closure CountClosure
	for i := range order.Items {
		line := &order.Items[i]
		diff := line.Fulfilled() - line.AmountRequired
		if diff == 0 {
			continue
		}
		dev := CountDeviation{
			ProductID:      line.ProductID,
			UnitPrice:      line.UnitPrice,
			CellID:         line.CellID,
			ExpirationDate: line.ExpirationDate,
			Serial:         line.Serial,
		}
		if diff > 0 {
			dev.Quantity = diff
			closure.Surplus = append(closure.Surplus, dev)
		} else {
			dev.Quantity = -diff
			closure.Shortage = append(closure.Shortage, dev)
		}
	}
	return closure
}
