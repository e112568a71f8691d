package document

import (
	"github.com/mysticum/wms/internal/domain/shared"
)

// DocumentCreatedEvent is raised when a document enters its initial status.
type DocumentCreatedEvent struct {
	shared.BaseDomainEvent
	TypeSymbol string `json:"type_symbol"`
	Barcode    string `json:"barcode"`
}

// NewDocumentCreatedEvent creates a document created event.
func NewDocumentCreatedEvent(d *Document) *DocumentCreatedEvent {
	return &DocumentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("document.created", "Document", d.ID),
		TypeSymbol:      d.TypeSymbol,
		Barcode:         d.Barcode,
	}
}

// DocumentStatusChangedEvent is raised on every lifecycle transition.
type DocumentStatusChangedEvent struct {
	shared.BaseDomainEvent
	TypeSymbol string `json:"type_symbol"`
	Barcode    string `json:"barcode"`
	From       Status `json:"from"`
	To         Status `json:"to"`
}

// NewDocumentStatusChangedEvent creates a status changed event.
func NewDocumentStatusChangedEvent(d *Document, from, to Status) *DocumentStatusChangedEvent {
	return &DocumentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("document.status_changed", "Document", d.ID),
		TypeSymbol:      d.TypeSymbol,
		Barcode:         d.Barcode,
		From:            from,
		To:              to,
	}
}

// DocumentPostedEvent is raised when the posting engine applies the
// document's inventory effects.
type DocumentPostedEvent struct {
	shared.BaseDomainEvent
	TypeSymbol string `json:"type_symbol"`
	Barcode    string `json:"barcode"`
}

// NewDocumentPostedEvent creates a document posted event.
func NewDocumentPostedEvent(d *Document) *DocumentPostedEvent {
	return &DocumentPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("document.posted", "Document", d.ID),
		TypeSymbol:      d.TypeSymbol,
		Barcode:         d.Barcode,
	}
}
