package topology

import (
	"github.com/google/uuid"

	"github.com/mysticum/wms/internal/domain/shared"
)

// Warehouse is the top of the physical containment chain.
type Warehouse struct {
	shared.BaseEntity
	Name    string
	Code    string
	Address string
}

// NewWarehouse creates a warehouse.
func NewWarehouse(name, code, address string) (*Warehouse, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Warehouse name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Warehouse code cannot be empty")
	}
	return &Warehouse{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Code:       code,
		Address:    address,
	}, nil
}

// Department belongs to a warehouse and groups rows of storage.
// DefaultCellID, when set, is the implicit target for cell-agnostic
// receipts (BO, WM+).
type Department struct {
	shared.BaseEntity
	Number            string
	Name              string
	RefrigerationMode *int
	WarehouseID       uuid.UUID
	DefaultCellID     *uuid.UUID
}

// NewDepartment creates a department within a warehouse.
func NewDepartment(warehouseID uuid.UUID, number, name string) (*Department, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Warehouse ID cannot be empty")
	}
	if number == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Department number cannot be empty")
	}
	return &Department{
		BaseEntity:  shared.NewBaseEntity(),
		Number:      number,
		Name:        name,
		WarehouseID: warehouseID,
	}, nil
}

// SetDefaultCell assigns the implicit receipt cell for the department.
func (d *Department) SetDefaultCell(cellID uuid.UUID) {
	d.DefaultCellID = &cellID
}

// Row is a physical aisle within a department.
type Row struct {
	shared.BaseEntity
	Number       int
	DepartmentID uuid.UUID
}

// Section is a segment of a row.
type Section struct {
	shared.BaseEntity
	Number string
	RowID  uuid.UUID
}

// Level is a shelf level within a section.
type Level struct {
	shared.BaseEntity
	Number    string
	SectionID uuid.UUID
}

// CellType distinguishes storage cell kinds (floor, shelf, picking).
type CellType int

const (
	CellTypeFloor   CellType = 0
	CellTypeShelf   CellType = 1
	CellTypePicking CellType = 2
)

// Cell is the finest-grained storage location. Stock lots and document
// line items reference cells; referenced cells must not be deleted.
type Cell struct {
	shared.BaseEntity
	Number  int
	Barcode string
	Type    CellType
	LevelID *uuid.UUID // nil while the cell is still being set up
}

// NewCell creates a storage cell attached to a level.
func NewCell(levelID uuid.UUID, number int, barcode string, cellType CellType) *Cell {
	c := &Cell{
		BaseEntity: shared.NewBaseEntity(),
		Number:     number,
		Barcode:    barcode,
		Type:       cellType,
	}
	if levelID != uuid.Nil {
		c.LevelID = &levelID
	}
	return c
}
