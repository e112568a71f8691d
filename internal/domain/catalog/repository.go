package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/mysticum/wms/internal/domain/shared"
)

// DocumentTypeRepository provides access to the document type catalog.
type DocumentTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DocumentType, error)
	FindBySymbol(ctx context.Context, symbol string) (*DocumentType, error)
	FindAll(ctx context.Context) ([]DocumentType, error)
	Save(ctx context.Context, t *DocumentType) error
}

// ProductRepository provides access to the product catalog.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, p *Product) error
}

// StatusRepository provides access to the per-type status catalog.
type StatusRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Status, error)
	FindByDocumentType(ctx context.Context, documentTypeID uuid.UUID) ([]Status, error)
	Save(ctx context.Context, s *Status) error
}
