package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is empty or not whitelisted.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// DocumentSortFields contains allowed sort fields for documents
var DocumentSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"number":         true,
	"barcode":        true,
	"type_symbol":    true,
	"current_status": true,
	"total_quantity": true,
	"total_price":    true,
	"started_at":     true,
	"ended_at":       true,
	"required_at":    true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"sku":        true,
	"ean":        true,
	"unit_price": true,
	"weight":     true,
}

// LotSortFields contains allowed sort fields for stock lots
var LotSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"product_id":      true,
	"cell_id":         true,
	"quantity":        true,
	"expiration_date": true,
	"serial":          true,
}
