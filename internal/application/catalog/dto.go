package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mysticum/wms/internal/domain/catalog"
)

// ===================== Request DTOs =====================

// CreateProductRequest adds a product to the catalog.
type CreateProductRequest struct {
	Name               string          `json:"name" binding:"required"`
	EAN                string          `json:"ean"`
	SKU                string          `json:"sku" binding:"required"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Weight             decimal.Decimal `json:"weight"`
	Description        string          `json:"description"`
	PackageOfProductID *uuid.UUID      `json:"package_of_product_id"`
	PackageMaxQuantity *int            `json:"package_max_quantity"`
}

// ProductListFilter narrows product list queries.
type ProductListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// ===================== Response DTOs =====================

// DocumentTypeResponse is a document type catalog entry.
type DocumentTypeResponse struct {
	ID                   uuid.UUID `json:"id"`
	Group                string    `json:"group"`
	Symbol               string    `json:"symbol"`
	Name                 string    `json:"name"`
	Effect               string    `json:"effect"`
	IsOrder              bool      `json:"is_order"`
	IsFixing             bool      `json:"is_fixing"`
	RequiresVerification bool      `json:"requires_verification"`
}

// ProductResponse is a product in API responses.
type ProductResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	EAN                string          `json:"ean,omitempty"`
	SKU                string          `json:"sku"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Weight             decimal.Decimal `json:"weight"`
	Description        string          `json:"description,omitempty"`
	PackageOfProductID *uuid.UUID      `json:"package_of_product_id,omitempty"`
	PackageMaxQuantity *int            `json:"package_max_quantity,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// StatusResponse is a per-type status catalog entry.
type StatusResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	DocumentTypeID uuid.UUID `json:"document_type_id"`
}

// ===================== Converters =====================

// ToDocumentTypeResponse converts a document type.
func ToDocumentTypeResponse(t *catalog.DocumentType) DocumentTypeResponse {
	return DocumentTypeResponse{
		ID:                   t.ID,
		Group:                t.Group,
		Symbol:               t.Symbol,
		Name:                 t.Name,
		Effect:               string(t.Effect),
		IsOrder:              t.IsOrder,
		IsFixing:             t.IsFixing,
		RequiresVerification: t.RequiresVerification,
	}
}

// ToProductResponse converts a product.
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		EAN:                p.EAN,
		SKU:                p.SKU,
		UnitPrice:          p.UnitPrice,
		Weight:             p.Weight,
		Description:        p.Description,
		PackageOfProductID: p.PackageOfProductID,
		PackageMaxQuantity: p.PackageMaxQuantity,
		CreatedAt:          p.CreatedAt,
	}
}

// ToStatusResponse converts a status entry.
func ToStatusResponse(s *catalog.Status) StatusResponse {
	return StatusResponse{
		ID:             s.ID,
		Name:           s.Name,
		DocumentTypeID: s.DocumentTypeID,
	}
}
