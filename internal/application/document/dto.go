package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mysticum/wms/internal/domain/document"
)

// ===================== Request DTOs =====================

// CreateLineItemRequest is one product line on a document being created.
type CreateLineItemRequest struct {
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	Amount         int64           `json:"amount" binding:"required,gt=0"`
	UnitPrice      decimal.Decimal `json:"unit_price"` // defaults to the catalog price
	CellID         *uuid.UUID      `json:"cell_id"`
	ExpirationDate *time.Time      `json:"expiration_date"`
	Serial         string          `json:"serial"`
}

// CreateDocumentRequest is a request to create a document of any type.
type CreateDocumentRequest struct {
	TypeSymbol              string                  `json:"type_symbol" binding:"required"`
	OriginDepartmentID      uuid.UUID               `json:"origin_department_id" binding:"required"`
	DestinationDepartmentID *uuid.UUID              `json:"destination_department_id"`
	OriginCellID            *uuid.UUID              `json:"origin_cell_id"`
	DestinationCellID       *uuid.UUID              `json:"destination_cell_id"`
	LinkedDocumentID        *uuid.UUID              `json:"linked_document_id"`
	Address                 string                  `json:"address"`
	Carrier                 string                  `json:"carrier"`
	Description             string                  `json:"description"`
	RequiredAt              *time.Time              `json:"required_at"`
	CommitteeMemberIDs      []uuid.UUID             `json:"committee_member_ids"`
	Items                   []CreateLineItemRequest `json:"items" binding:"required,min=1,dive"`
}

// TransitionRequest moves a document to a new lifecycle status.
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note" binding:"max=500"`
}

// ListFilter narrows document list queries.
type ListFilter struct {
	Search       string     `form:"search"`
	TypeSymbol   string     `form:"type_symbol"`
	Status       string     `form:"status"`
	DepartmentID *uuid.UUID `form:"department_id"`
	Page         int        `form:"page" binding:"min=0"`
	PageSize     int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ===================== Response DTOs =====================

// LineItemResponse is one document line in API responses.
type LineItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	AmountRequired int64           `json:"amount_required"`
	AmountAdded    *int64          `json:"amount_added,omitempty"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	CellID         *uuid.UUID      `json:"cell_id,omitempty"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
	Serial         string          `json:"serial,omitempty"`
}

// StatusChangeResponse is one audit-trail entry in API responses.
type StatusChangeResponse struct {
	Status      string    `json:"status"`
	UserID      uuid.UUID `json:"user_id"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DocumentResponse is a full document in API responses.
type DocumentResponse struct {
	ID                      uuid.UUID              `json:"id"`
	TypeSymbol              string                 `json:"type_symbol"`
	Number                  int                    `json:"number"`
	Barcode                 string                 `json:"barcode"`
	OriginDepartmentID      uuid.UUID              `json:"origin_department_id"`
	DestinationDepartmentID *uuid.UUID             `json:"destination_department_id,omitempty"`
	OriginCellID            *uuid.UUID             `json:"origin_cell_id,omitempty"`
	DestinationCellID       *uuid.UUID             `json:"destination_cell_id,omitempty"`
	Status                  string                 `json:"status"`
	TotalQuantity           int64                  `json:"total_quantity"`
	TotalWeight             decimal.Decimal        `json:"total_weight"`
	TotalPrice              decimal.Decimal        `json:"total_price"`
	Address                 string                 `json:"address,omitempty"`
	Carrier                 string                 `json:"carrier,omitempty"`
	LinkedDocumentID        *uuid.UUID             `json:"linked_document_id,omitempty"`
	StartedAt               *time.Time             `json:"started_at,omitempty"`
	EndedAt                 *time.Time             `json:"ended_at,omitempty"`
	PostedAt                *time.Time             `json:"posted_at,omitempty"`
	RequiredAt              *time.Time             `json:"required_at,omitempty"`
	CreatedByID             uuid.UUID              `json:"created_by_id"`
	Description             string                 `json:"description,omitempty"`
	Committee               []uuid.UUID            `json:"committee,omitempty"`
	Items                   []LineItemResponse     `json:"items"`
	StatusHistory           []StatusChangeResponse `json:"status_history"`
	CreatedAt               time.Time              `json:"created_at"`
	UpdatedAt               time.Time              `json:"updated_at"`
}

// DocumentListResponse is a compact document for list endpoints.
type DocumentListResponse struct {
	ID                 uuid.UUID       `json:"id"`
	TypeSymbol         string          `json:"type_symbol"`
	Barcode            string          `json:"barcode"`
	OriginDepartmentID uuid.UUID       `json:"origin_department_id"`
	Status             string          `json:"status"`
	TotalQuantity      int64           `json:"total_quantity"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	CreatedAt          time.Time       `json:"created_at"`
}

// OutstandingResponse reports the unfulfilled remainder of an order line.
type OutstandingResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Remaining int64     `json:"remaining"`
}

// ===================== Converters =====================

// ToDocumentResponse converts a domain document to its API representation.
func ToDocumentResponse(d *document.Document) DocumentResponse {
	items := make([]LineItemResponse, 0, len(d.Items))
	for i := range d.Items {
		item := &d.Items[i]
		items = append(items, LineItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			AmountRequired: item.AmountRequired,
			AmountAdded:    item.AmountAdded,
			UnitPrice:      item.UnitPrice,
			CellID:         item.CellID,
			ExpirationDate: item.ExpirationDate,
			Serial:         item.Serial,
		})
	}
	history := make([]StatusChangeResponse, 0, len(d.StatusHistory))
	for i := range d.StatusHistory {
		change := &d.StatusHistory[i]
		history = append(history, StatusChangeResponse{
			Status:      change.Status.String(),
			UserID:      change.UserID,
			Description: change.Description,
			CreatedAt:   change.CreatedAt,
		})
	}
	return DocumentResponse{
		ID:                      d.ID,
		TypeSymbol:              d.TypeSymbol,
		Number:                  d.Number,
		Barcode:                 d.Barcode,
		OriginDepartmentID:      d.OriginDepartmentID,
		DestinationDepartmentID: d.DestinationDepartmentID,
		OriginCellID:            d.OriginCellID,
		DestinationCellID:       d.DestinationCellID,
		Status:                  d.CurrentStatus.String(),
		TotalQuantity:           d.TotalQuantity,
		TotalWeight:             d.TotalWeight,
		TotalPrice:              d.TotalPrice,
		Address:                 d.Address,
		Carrier:                 d.Carrier,
		LinkedDocumentID:        d.LinkedDocumentID,
		StartedAt:               d.StartedAt,
		EndedAt:                 d.EndedAt,
		PostedAt:                d.PostedAt,
		RequiredAt:              d.RequiredAt,
		CreatedByID:             d.CreatedByID,
		Description:             d.Description,
		Committee:               d.Committee,
		Items:                   items,
		StatusHistory:           history,
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
	}
}

// ToDocumentListResponses converts documents to their list representation.
func ToDocumentListResponses(docs []document.Document) []DocumentListResponse {
	out := make([]DocumentListResponse, 0, len(docs))
	for i := range docs {
		d := &docs[i]
		out = append(out, DocumentListResponse{
			ID:                 d.ID,
			TypeSymbol:         d.TypeSymbol,
			Barcode:            d.Barcode,
			OriginDepartmentID: d.OriginDepartmentID,
			Status:             d.CurrentStatus.String(),
			TotalQuantity:      d.TotalQuantity,
			TotalPrice:         d.TotalPrice,
			CreatedAt:          d.CreatedAt,
		})
	}
	return out
}
