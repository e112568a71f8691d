package topology

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mysticum/wms/internal/domain/shared"
	"github.com/mysticum/wms/internal/domain/topology"
)

// Service manages the physical topology: warehouses, departments and the
// row/section/level/cell chain below them.
type Service struct {
	repo     topology.Repository
	resolver *topology.Resolver
	logger   *zap.Logger
}

// NewService creates a topology service.
func NewService(repo topology.Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: topology.NewResolver(repo),
		logger:   logger,
	}
}

// CreateWarehouse creates a warehouse.
func (s *Service) CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	w, err := topology.NewWarehouse(req.Name, req.Code, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveWarehouse(ctx, w); err != nil {
		return nil, err
	}
	s.logger.Info("warehouse created", zap.String("code", w.Code))
	resp := ToWarehouseResponse(w)
	return &resp, nil
}

// ListWarehouses lists all warehouses.
func (s *Service) ListWarehouses(ctx context.Context) ([]WarehouseResponse, error) {
	warehouses, err := s.repo.FindAllWarehouses(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	out := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		out = append(out, ToWarehouseResponse(&warehouses[i]))
	}
	return out, nil
}

// CreateDepartment creates a department within a warehouse.
func (s *Service) CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (*DepartmentResponse, error) {
	if _, err := s.repo.FindWarehouseByID(ctx, req.WarehouseID); err != nil {
		return nil, err
	}
	d, err := topology.NewDepartment(req.WarehouseID, req.Number, req.Name)
	if err != nil {
		return nil, err
	}
	d.RefrigerationMode = req.RefrigerationMode
	if err := s.repo.SaveDepartment(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Info("department created", zap.String("number", d.Number))
	resp := ToDepartmentResponse(d)
	return &resp, nil
}

// ListDepartments lists the departments of a warehouse.
func (s *Service) ListDepartments(ctx context.Context, warehouseID uuid.UUID) ([]DepartmentResponse, error) {
	departments, err := s.repo.FindDepartmentsByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]DepartmentResponse, 0, len(departments))
	for i := range departments {
		out = append(out, ToDepartmentResponse(&departments[i]))
	}
	return out, nil
}

// SetDefaultCell assigns the implicit receipt cell of a department. The
// cell must belong to the department's own topology chain.
func (s *Service) SetDefaultCell(ctx context.Context, departmentID uuid.UUID, req SetDefaultCellRequest) (*DepartmentResponse, error) {
	dept, err := s.repo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	owner, err := s.resolver.DepartmentOfCell(ctx, req.CellID)
	if err != nil {
		return nil, err
	}
	if owner.ID != dept.ID {
		return nil, shared.NewDomainErrorf("VALIDATION_ERROR", "cell does not belong to department %s", dept.Number)
	}
	dept.SetDefaultCell(req.CellID)
	if err := s.repo.SaveDepartment(ctx, dept); err != nil {
		return nil, err
	}
	resp := ToDepartmentResponse(dept)
	return &resp, nil
}

// LocateCell resolves a cell barcode to the cell and its owning department.
func (s *Service) LocateCell(ctx context.Context, barcode string) (*CellLocationResponse, error) {
	cell, err := s.repo.FindCellByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	dept, err := s.resolver.DepartmentOfCell(ctx, cell.ID)
	if err != nil {
		return nil, err
	}
	return &CellLocationResponse{
		Cell:       ToCellResponse(cell),
		Department: ToDepartmentResponse(dept),
	}, nil
}

// CellsOfDepartment lists the cells owned by a department.
func (s *Service) CellsOfDepartment(ctx context.Context, departmentID uuid.UUID) ([]CellResponse, error) {
	cells, err := s.resolver.CellsOfDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	out := make([]CellResponse, 0, len(cells))
	for i := range cells {
		out = append(out, ToCellResponse(&cells[i]))
	}
	return out, nil
}
