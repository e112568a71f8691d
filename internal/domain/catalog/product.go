package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mysticum/wms/internal/domain/shared"
)

// Product is a stock-keeping unit in the catalog.
type Product struct {
	shared.BaseEntity
	Name        string
	UnitPrice   decimal.Decimal
	Weight      decimal.Decimal
	EAN         string
	SKU         string
	Description string
	// PackageOfProductID links a packaging unit to the product it contains.
	PackageOfProductID *uuid.UUID
	PackageMaxQuantity *int
}

// NewProduct creates a catalog product.
func NewProduct(name, ean, sku string, unitPrice, weight decimal.Decimal) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product name cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product SKU cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainErrorf("VALIDATION_ERROR", "product %s: unit price cannot be negative", sku)
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		EAN:        ean,
		SKU:        sku,
		UnitPrice:  unitPrice,
		Weight:     weight,
	}, nil
}
