package topology

import (
	"context"

	"github.com/google/uuid"

	"github.com/mysticum/wms/internal/domain/shared"
)

// Repository provides access to the physical topology chain.
type Repository interface {
	FindWarehouseByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	FindAllWarehouses(ctx context.Context, filter shared.Filter) ([]Warehouse, error)
	SaveWarehouse(ctx context.Context, w *Warehouse) error

	FindDepartmentByID(ctx context.Context, id uuid.UUID) (*Department, error)
	FindDepartmentsByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]Department, error)
	SaveDepartment(ctx context.Context, d *Department) error

	FindCellByID(ctx context.Context, id uuid.UUID) (*Cell, error)
	FindCellByBarcode(ctx context.Context, barcode string) (*Cell, error)
	SaveCell(ctx context.Context, c *Cell) error

	FindLevelByID(ctx context.Context, id uuid.UUID) (*Level, error)
	FindSectionByID(ctx context.Context, id uuid.UUID) (*Section, error)
	FindRowByID(ctx context.Context, id uuid.UUID) (*Row, error)

	// CellsOfDepartment returns every cell reachable from the department
	// through the row/section/level chain.
	CellsOfDepartment(ctx context.Context, departmentID uuid.UUID) ([]Cell, error)
}
