package stock

import (
	"context"

	"github.com/google/uuid"

	"github.com/mysticum/wms/internal/domain/inventory"
	"github.com/mysticum/wms/internal/domain/shared"
	"github.com/mysticum/wms/internal/domain/topology"
)

// Service answers stock queries against the lot projection. It is
// read-only: every lot mutation goes through document posting.
type Service struct {
	lots inventory.LotRepository
	topo topology.Repository
}

// NewService creates a stock query service.
func NewService(lots inventory.LotRepository, topo topology.Repository) *Service {
	return &Service{lots: lots, topo: topo}
}

// ByCell returns the lots stored in one cell.
func (s *Service) ByCell(ctx context.Context, cellID uuid.UUID) ([]LotResponse, error) {
	lots, err := s.lots.FindByCell(ctx, cellID)
	if err != nil {
		return nil, err
	}
	return ToLotResponses(lots), nil
}

// ByProduct returns a product's stock across all cells with the total.
func (s *Service) ByProduct(ctx context.Context, productID uuid.UUID, filter ListFilter) (*ProductStockResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	lots, err := s.lots.FindByProduct(ctx, productID, domainFilter)
	if err != nil {
		return nil, err
	}
	resp := &ProductStockResponse{
		ProductID: productID,
		Lots:      ToLotResponses(lots),
	}
	for i := range lots {
		resp.Total += lots[i].Quantity
	}
	return resp, nil
}

// ByDepartment returns every lot stored in the department's cells, walking
// the topology chain to collect them.
func (s *Service) ByDepartment(ctx context.Context, departmentID uuid.UUID) ([]LotResponse, error) {
	cells, err := s.topo.CellsOfDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return []LotResponse{}, nil
	}
	ids := make([]uuid.UUID, 0, len(cells))
	for i := range cells {
		ids = append(ids, cells[i].ID)
	}
	lots, err := s.lots.FindByCells(ctx, ids)
	if err != nil {
		return nil, err
	}
	return ToLotResponses(lots), nil
}
