package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mysticum/wms/internal/domain/catalog"
	"github.com/mysticum/wms/internal/domain/shared"
)

// Service serves the reference catalogs: document types, per-type statuses
// and products. Document types are reference data seeded by migration, so
// the service never creates them.
type Service struct {
	types    catalog.DocumentTypeRepository
	statuses catalog.StatusRepository
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewService creates a catalog service.
func NewService(
	types catalog.DocumentTypeRepository,
	statuses catalog.StatusRepository,
	products catalog.ProductRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		types:    types,
		statuses: statuses,
		products: products,
		logger:   logger,
	}
}

// ListDocumentTypes lists the document type catalog.
func (s *Service) ListDocumentTypes(ctx context.Context) ([]DocumentTypeResponse, error) {
	types, err := s.types.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DocumentTypeResponse, 0, len(types))
	for i := range types {
		out = append(out, ToDocumentTypeResponse(&types[i]))
	}
	return out, nil
}

// GetDocumentType retrieves a document type by symbol.
func (s *Service) GetDocumentType(ctx context.Context, symbol string) (*DocumentTypeResponse, error) {
	t, err := s.types.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	resp := ToDocumentTypeResponse(t)
	return &resp, nil
}

// ListStatuses lists the status catalog of a document type.
func (s *Service) ListStatuses(ctx context.Context, documentTypeID uuid.UUID) ([]StatusResponse, error) {
	statuses, err := s.statuses.FindByDocumentType(ctx, documentTypeID)
	if err != nil {
		return nil, err
	}
	out := make([]StatusResponse, 0, len(statuses))
	for i := range statuses {
		out = append(out, ToStatusResponse(&statuses[i]))
	}
	return out, nil
}

// CreateProduct adds a product to the catalog.
func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.products.FindBySKU(ctx, req.SKU); err == nil {
		return nil, shared.NewDomainErrorf("ALREADY_EXISTS", "product with SKU %s already exists", req.SKU)
	}
	p, err := catalog.NewProduct(req.Name, req.EAN, req.SKU, req.UnitPrice, req.Weight)
	if err != nil {
		return nil, err
	}
	p.Description = req.Description
	p.PackageOfProductID = req.PackageOfProductID
	p.PackageMaxQuantity = req.PackageMaxQuantity

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("product created", zap.String("sku", p.SKU))
	resp := ToProductResponse(p)
	return &resp, nil
}

// GetProduct retrieves a product.
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(p)
	return &resp, nil
}

// ListProducts lists products with pagination.
func (s *Service) ListProducts(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	total, err := s.products.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	products, err := s.products.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out, total, nil
}
