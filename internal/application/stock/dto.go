package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mysticum/wms/internal/domain/inventory"
)

// LotResponse is one stock lot in API responses.
type LotResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	CellID         uuid.UUID       `json:"cell_id"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
	Serial         string          `json:"serial,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductStockResponse aggregates a product's stock across lots.
type ProductStockResponse struct {
	ProductID uuid.UUID     `json:"product_id"`
	Total     int64         `json:"total"`
	Lots      []LotResponse `json:"lots"`
}

// ListFilter narrows stock queries.
type ListFilter struct {
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToLotResponses converts lots to their API representation.
func ToLotResponses(lots []inventory.Lot) []LotResponse {
	out := make([]LotResponse, 0, len(lots))
	for i := range lots {
		lot := &lots[i]
		out = append(out, LotResponse{
			ID:             lot.ID,
			ProductID:      lot.ProductID,
			CellID:         lot.CellID,
			Quantity:       lot.Quantity,
			UnitPrice:      lot.UnitPrice,
			ExpirationDate: lot.ExpirationDate,
			Serial:         lot.Serial,
			UpdatedAt:      lot.UpdatedAt,
		})
	}
	return out
}
