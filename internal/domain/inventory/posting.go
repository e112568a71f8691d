package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mysticum/wms/internal/domain/catalog"
	"github.com/mysticum/wms/internal/domain/document"
	"github.com/mysticum/wms/internal/domain/shared"
	"github.com/mysticum/wms/internal/domain/topology"
)

// DepartmentLookup is the slice of topology the posting engine needs: the
// default cell of a department for cell-agnostic receipts.
type DepartmentLookup interface {
	FindDepartmentByID(ctx context.Context, id uuid.UUID) (*topology.Department, error)
}

// Engine applies a finalized document's inventory effects. The caller is
// responsible for running Post inside the same transaction that marks the
// document posted, so the ledger and the projection move together.
type Engine struct {
	lots        LotRepository
	departments DepartmentLookup
	logger      *zap.Logger
}

// NewEngine creates a posting engine.
func NewEngine(lots LotRepository, departments DepartmentLookup, logger *zap.Logger) *Engine {
	return &Engine{
		lots:        lots,
		departments: departments,
		logger:      logger,
	}
}

// Post dispatches on the document type's effect class. Documents without
// inventory effects pass through untouched. Post never marks the document;
// the lifecycle controller owns the posted-at guard.
func (e *Engine) Post(ctx context.Context, doc *document.Document, docType *catalog.DocumentType, now time.Time) error {
	if doc.IsPosted() {
		return shared.NewDomainErrorf("ALREADY_POSTED", "document %s was already posted", doc.Barcode)
	}
	switch docType.Effect {
	case catalog.EffectAdditive:
		return e.applyAdditive(ctx, doc, docType, now)
	case catalog.EffectSubtractive:
		return e.applySubtractive(ctx, doc, now)
	case catalog.EffectTransfer:
		return e.applyTransfer(ctx, doc, now)
	default:
		return nil
	}
}

// applyAdditive creates or increments a lot per line item. Cell-agnostic
// receipt types post every line to the origin department's default cell;
// everything else posts to the line's own cell.
func (e *Engine) applyAdditive(ctx context.Context, doc *document.Document, docType *catalog.DocumentType, now time.Time) error {
	var defaultCell *uuid.UUID
	if docType.TargetsDefaultCell {
		dept, err := e.departments.FindDepartmentByID(ctx, doc.OriginDepartmentID)
		if err != nil {
			return err
		}
		if dept.DefaultCellID == nil {
			return shared.NewDomainErrorf("MISSING_DEFAULT_CELL", "department %s has no default cell; cannot post %s", dept.Number, doc.Barcode)
		}
		defaultCell = dept.DefaultCellID
	}

	for i := range doc.Items {
		item := &doc.Items[i]
		cellID := item.CellID
		if defaultCell != nil {
			cellID = defaultCell
		}
		if cellID == nil {
			return shared.NewDomainErrorf("VALIDATION_ERROR", "document %s: line for product %s has no target cell", doc.Barcode, item.ProductID)
		}
		if err := e.addToCell(ctx, doc, item, *cellID, item.AmountRequired, now); err != nil {
			return err
		}
	}
	return nil
}

// applySubtractive drains lots per line item. A line whose lot is missing
// or short is tolerated: physical reality wins over the books, so the
// engine removes what is there, logs the discrepancy and moves on. The
// inventory-count flow exists to reconcile the rest.
func (e *Engine) applySubtractive(ctx context.Context, doc *document.Document, now time.Time) error {
	for i := range doc.Items {
		item := &doc.Items[i]
		cellID := item.CellID
		if cellID == nil {
			cellID = doc.OriginCellID
		}
		if cellID == nil {
			return shared.NewDomainErrorf("VALIDATION_ERROR", "document %s: line for product %s has no source cell", doc.Barcode, item.ProductID)
		}
		if _, err := e.removeFromCell(ctx, doc, item, *cellID, item.AmountRequired, now); err != nil {
			return err
		}
	}
	return nil
}

// applyTransfer moves each line from its source cell to the document's
// destination cell. Only the quantity actually found at the source moves;
// shortfalls are logged the same way subtractive postings log them.
func (e *Engine) applyTransfer(ctx context.Context, doc *document.Document, now time.Time) error {
	if doc.DestinationCellID == nil {
		return shared.NewDomainErrorf("VALIDATION_ERROR", "transfer document %s has no destination cell", doc.Barcode)
	}
	for i := range doc.Items {
		item := &doc.Items[i]
		cellID := item.CellID
		if cellID == nil {
			cellID = doc.OriginCellID
		}
		if cellID == nil {
			return shared.NewDomainErrorf("VALIDATION_ERROR", "transfer document %s: line for product %s has no source cell", doc.Barcode, item.ProductID)
		}
		moved, err := e.removeFromCell(ctx, doc, item, *cellID, item.AmountRequired, now)
		if err != nil {
			return err
		}
		if moved == 0 {
			continue
		}
		if err := e.addToCell(ctx, doc, item, *doc.DestinationCellID, moved, now); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) addToCell(ctx context.Context, doc *document.Document, item *document.LineItem, cellID uuid.UUID, qty int64, now time.Time) error {
	lot, err := e.lots.FindByKey(ctx, item.ProductID, cellID, item.ExpirationDate, item.Serial)
	switch {
	case err == nil:
		lot.Quantity += qty
		lot.UpdatedAt = now
		return e.lots.Save(ctx, lot)
	case errors.Is(err, shared.ErrNotFound):
		fresh, lerr := NewLot(item.ProductID, cellID, qty, item.UnitPrice, item.ExpirationDate, item.Serial, doc.ID, now)
		if lerr != nil {
			return lerr
		}
		return e.lots.Save(ctx, fresh)
	default:
		return err
	}
}

// removeFromCell drains up to qty from the matching lot and returns how
// much was actually removed.
func (e *Engine) removeFromCell(ctx context.Context, doc *document.Document, item *document.LineItem, cellID uuid.UUID, qty int64, now time.Time) (int64, error) {
	lot, err := e.lots.FindByKey(ctx, item.ProductID, cellID, item.ExpirationDate, item.Serial)
	if errors.Is(err, shared.ErrNotFound) {
		e.logger.Warn("posting against missing stock",
			zap.String("barcode", doc.Barcode),
			zap.String("product_id", item.ProductID.String()),
			zap.String("cell_id", cellID.String()),
			zap.Int64("requested", qty))
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed := qty
	if lot.Quantity < qty {
		e.logger.Warn("posting exceeds recorded stock",
			zap.String("barcode", doc.Barcode),
			zap.String("product_id", item.ProductID.String()),
			zap.String("cell_id", cellID.String()),
			zap.Int64("requested", qty),
			zap.Int64("available", lot.Quantity))
		removed = lot.Quantity
	}

	lot.Quantity -= removed
	if lot.Quantity == 0 {
		return removed, e.lots.Delete(ctx, lot.ID)
	}
	lot.UpdatedAt = now
	return removed, e.lots.Save(ctx, lot)
}
