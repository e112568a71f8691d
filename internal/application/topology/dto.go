package topology

import (
	"time"

	"github.com/google/uuid"

	"github.com/mysticum/wms/internal/domain/topology"
)

// ===================== Request DTOs =====================

// CreateWarehouseRequest creates a warehouse.
type CreateWarehouseRequest struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code" binding:"required"`
	Address string `json:"address"`
}

// CreateDepartmentRequest creates a department within a warehouse.
type CreateDepartmentRequest struct {
	WarehouseID       uuid.UUID `json:"warehouse_id" binding:"required"`
	Number            string    `json:"number" binding:"required"`
	Name              string    `json:"name"`
	RefrigerationMode *int      `json:"refrigeration_mode"`
}

// SetDefaultCellRequest assigns a department's implicit receipt cell.
type SetDefaultCellRequest struct {
	CellID uuid.UUID `json:"cell_id" binding:"required"`
}

// ===================== Response DTOs =====================

// WarehouseResponse is a warehouse in API responses.
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DepartmentResponse is a department in API responses.
type DepartmentResponse struct {
	ID                uuid.UUID  `json:"id"`
	WarehouseID       uuid.UUID  `json:"warehouse_id"`
	Number            string     `json:"number"`
	Name              string     `json:"name,omitempty"`
	RefrigerationMode *int       `json:"refrigeration_mode,omitempty"`
	DefaultCellID     *uuid.UUID `json:"default_cell_id,omitempty"`
}

// CellResponse is a storage cell in API responses.
type CellResponse struct {
	ID      uuid.UUID  `json:"id"`
	Number  int        `json:"number"`
	Barcode string     `json:"barcode"`
	Type    int        `json:"type"`
	LevelID *uuid.UUID `json:"level_id,omitempty"`
}

// CellLocationResponse places a cell in its containment chain.
type CellLocationResponse struct {
	Cell       CellResponse       `json:"cell"`
	Department DepartmentResponse `json:"department"`
}

// ===================== Converters =====================

// ToWarehouseResponse converts a warehouse.
func ToWarehouseResponse(w *topology.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Code:      w.Code,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
	}
}

// ToDepartmentResponse converts a department.
func ToDepartmentResponse(d *topology.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:                d.ID,
		WarehouseID:       d.WarehouseID,
		Number:            d.Number,
		Name:              d.Name,
		RefrigerationMode: d.RefrigerationMode,
		DefaultCellID:     d.DefaultCellID,
	}
}

// ToCellResponse converts a cell.
func ToCellResponse(c *topology.Cell) CellResponse {
	return CellResponse{
		ID:      c.ID,
		Number:  c.Number,
		Barcode: c.Barcode,
		Type:    int(c.Type),
		LevelID: c.LevelID,
	}
}
