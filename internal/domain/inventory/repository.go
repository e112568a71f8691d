package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mysticum/wms/internal/domain/shared"
)

// LotRepository provides access to stock lots. FindByKey returns
// shared.ErrNotFound when no lot exists for the key; the posting engine
// relies on that to decide between insert and increment.
type LotRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Lot, error)
	FindByKey(ctx context.Context, productID, cellID uuid.UUID, expirationDate *time.Time, serial string) (*Lot, error)
	FindByCell(ctx context.Context, cellID uuid.UUID) ([]Lot, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Lot, error)
	FindByCells(ctx context.Context, cellIDs []uuid.UUID) ([]Lot, error)
	Save(ctx context.Context, lot *Lot) error
	Delete(ctx context.Context, id uuid.UUID) error
}
