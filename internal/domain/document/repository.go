package document

import (
	"context"

	"github.com/google/uuid"

	"github.com/mysticum/wms/internal/domain/shared"
)

// Repository provides access to documents with their line items, status
// history and committee members.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	// FindByIDForUpdate loads a document holding a row lock until the
	// surrounding transaction ends. Fulfillment propagation uses it so
	// concurrent responses to one order serialize on the order row.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Document, error)
	FindByBarcode(ctx context.Context, barcode string) (*Document, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Document, error)
	FindByLinkedDocument(ctx context.Context, linkedID uuid.UUID) ([]Document, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, d *Document) error
}

// SequenceRepository hands out document numbers. NextNumber must be atomic
// under concurrency: two documents created in the same scope never receive
// the same number, and numbers within a scope are gapless and strictly
// increasing. The scope is (type symbol, department, year).
type SequenceRepository interface {
	NextNumber(ctx context.Context, symbol string, departmentID uuid.UUID, year int) (int, error)
}
