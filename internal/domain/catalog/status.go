package catalog

import (
	"github.com/google/uuid"

	"github.com/mysticum/wms/internal/domain/shared"
)

// Status is a named state scoped to a DocumentType. The allowed-status set
// for a document is whatever the catalog defines for its type; the state
// machine in the document package decides which moves between them are legal.
type Status struct {
	shared.BaseEntity
	Name           string
	DocumentTypeID uuid.UUID
}

// NewStatus creates a status catalog entry for a document type.
func NewStatus(documentTypeID uuid.UUID, name string) (*Status, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Status name cannot be empty")
	}
	if documentTypeID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Status must belong to a document type")
	}
	return &Status{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           name,
		DocumentTypeID: documentTypeID,
	}, nil
}
