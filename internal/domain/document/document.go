package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mysticum/wms/internal/domain/catalog"
	"github.com/mysticum/wms/internal/domain/shared"
)

// Status is a document lifecycle state.
type Status string

const (
	StatusCreated   Status = "Created"
	StatusGenerated Status = "Generated" // initial state of order documents
	StatusStarted   Status = "Started"
	StatusCompleted Status = "Completed"
	StatusCanceled  Status = "Canceled"
	StatusClosed    Status = "Closed"
)

// IsTerminal reports whether the status has no outbound transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCanceled, StatusClosed:
		return true
	}
	return false
}

// IsInitial reports whether the status is one a document is born in.
func (s Status) IsInitial() bool {
	return s == StatusCreated || s == StatusGenerated
}

// CanTransitionTo checks whether moving to the target status is legal.
// Terminal states have no outbound transitions, and a document can never
// return to an initial state.
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	if target.IsInitial() {
		return false
	}
	return true
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// InitialStatusFor returns the status a freshly created document of the
// given type starts in: Generated for order documents, Created otherwise.
func InitialStatusFor(docType *catalog.DocumentType) Status {
	if docType.IsOrder {
		return StatusGenerated
	}
	return StatusCreated
}

// StatusChange is one append-only entry in a document's audit trail.
type StatusChange struct {
	ID          uuid.UUID
	DocumentID  uuid.UUID
	Status      Status
	UserID      uuid.UUID
	Description string
	CreatedAt   time.Time
}

// LineItem is one product entry on a document. AmountRequired is what the
// document asks for; AmountAdded is what a response document has fulfilled
// so far (nil until the first fulfillment).
type LineItem struct {
	ID             uuid.UUID
	DocumentID     uuid.UUID
	ProductID      uuid.UUID
	AmountRequired int64
	AmountAdded    *int64
	UnitPrice      decimal.Decimal
	CellID         *uuid.UUID
	ExpirationDate *time.Time
	Serial         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Fulfilled returns the fulfilled amount, treating nil as zero.
func (i *LineItem) Fulfilled() int64 {
	if i.AmountAdded == nil {
		return 0
	}
	return *i.AmountAdded
}

// AddFulfilled increments the fulfilled amount by qty.
func (i *LineItem) AddFulfilled(qty int64, now time.Time) {
	total := i.Fulfilled() + qty
	i.AmountAdded = &total
	i.UpdatedAt = now
}

// Document is a transaction header: the aggregate root of the ledger. Once a
// terminal status is reached the line items are frozen; the posting engine
// has already consumed them.
type Document struct {
	shared.BaseAggregateRoot
	TypeID     uuid.UUID
	TypeSymbol string // denormalized from the catalog entry
	Number     int
	Barcode    string

	OriginDepartmentID      uuid.UUID
	DestinationDepartmentID *uuid.UUID
	OriginCellID            *uuid.UUID
	DestinationCellID       *uuid.UUID

	CurrentStatus Status
	TotalQuantity int64
	TotalWeight   decimal.Decimal
	TotalPrice    decimal.Decimal

	Address string
	Carrier string

	LinkedDocumentID *uuid.UUID

	StartedAt *time.Time
	EndedAt   *time.Time
	// PostedAt guards the posting engine: inventory effects are applied at
	// most once per document.
	PostedAt *time.Time

	RequiredAt   *time.Time
	CreatedByID  uuid.UUID
	VerifiedByID *uuid.UUID
	Description  string

	Committee     []uuid.UUID
	StatusHistory []StatusChange
	Items         []LineItem
}

// NewDocument creates a document in its type's initial status and records
// the first audit-trail entry. Number and barcode are assigned by the
// lifecycle controller before the document is persisted.
func NewDocument(docType *catalog.DocumentType, originDepartmentID, createdByID uuid.UUID, now time.Time) (*Document, error) {
	if docType == nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Document type is required")
	}
	if originDepartmentID == uuid.Nil {
		return nil, shared.NewDomainErrorf("VALIDATION_ERROR", "document of type %s requires an origin department", docType.Symbol)
	}
	if createdByID == uuid.Nil {
		return nil, shared.NewDomainErrorf("VALIDATION_ERROR", "document of type %s requires a creator", docType.Symbol)
	}

	root := shared.NewBaseAggregateRoot()
	root.CreatedAt = now
	root.UpdatedAt = now

	d := &Document{
		BaseAggregateRoot:  root,
		TypeID:             docType.ID,
		TypeSymbol:         docType.Symbol,
		OriginDepartmentID: originDepartmentID,
		CurrentStatus:      InitialStatusFor(docType),
		TotalWeight:        decimal.Zero,
		TotalPrice:         decimal.Zero,
		CreatedByID:        createdByID,
		Committee:          make([]uuid.UUID, 0),
		StatusHistory:      make([]StatusChange, 0),
		Items:              make([]LineItem, 0),
	}
	d.appendStatus(d.CurrentStatus, createdByID, "", now)

	d.AddDomainEvent(NewDocumentCreatedEvent(d))
	return d, nil
}

// AddItem appends a line item. A product may appear at most once per
// document; multiple lots of one product go on separate documents.
func (d *Document) AddItem(productID uuid.UUID, amountRequired int64, unitPrice decimal.Decimal, cellID *uuid.UUID, expirationDate *time.Time, serial string, now time.Time) error {
	if d.CurrentStatus.IsTerminal() {
		return shared.NewDomainErrorf("INVALID_TRANSITION", "document %s is %s; line items are frozen", d.Barcode, d.CurrentStatus)
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Line item product cannot be empty")
	}
	if amountRequired <= 0 {
		return shared.NewDomainErrorf("VALIDATION_ERROR", "line item for product %s: required amount must be positive", productID)
	}
	if _, ok := d.ItemByProduct(productID); ok {
		return shared.NewDomainErrorf("ALREADY_EXISTS", "product %s already present on document %s", productID, d.Barcode)
	}

	d.Items = append(d.Items, LineItem{
		ID:             uuid.New(),
		DocumentID:     d.ID,
		ProductID:      productID,
		AmountRequired: amountRequired,
		UnitPrice:      unitPrice,
		CellID:         cellID,
		ExpirationDate: expirationDate,
		Serial:         serial,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	d.recalculateTotals()
	d.UpdatedAt = now
	return nil
}

// ItemByProduct finds the line item for a product.
func (d *Document) ItemByProduct(productID uuid.UUID) (*LineItem, bool) {
	for i := range d.Items {
		if d.Items[i].ProductID == productID {
			return &d.Items[i], true
		}
	}
	return nil, false
}

// recalculateTotals refreshes the derived aggregates from the line items.
// Total weight is set separately by the lifecycle controller, which knows
// the per-product weights from the catalog.
func (d *Document) recalculateTotals() {
	var qty int64
	price := decimal.Zero
	for i := range d.Items {
		qty += d.Items[i].AmountRequired
		price = price.Add(d.Items[i].UnitPrice.Mul(decimal.NewFromInt(d.Items[i].AmountRequired)))
	}
	d.TotalQuantity = qty
	d.TotalPrice = price
}

// SetTotalWeight records the catalog-derived total weight.
func (d *Document) SetTotalWeight(w decimal.Decimal) {
	d.TotalWeight = w
}

// AddCommitteeMember attaches a user to the document (inventory committee).
func (d *Document) AddCommitteeMember(userID uuid.UUID) {
	for _, id := range d.Committee {
		if id == userID {
			return
		}
	}
	d.Committee = append(d.Committee, userID)
}

// TransitionTo moves the document to a new status, appending the audit
// entry. Terminal states are final; a document whose inventory effects were
// already posted cannot be canceled, since no compensating reversal exists.
func (d *Document) TransitionTo(target Status, userID uuid.UUID, note string, now time.Time) error {
	if !d.CurrentStatus.CanTransitionTo(target) {
		return shared.NewDomainErrorf("INVALID_TRANSITION", "document %s: cannot transition from %s to %s", d.Barcode, d.CurrentStatus, target)
	}
	if target == StatusCanceled && d.PostedAt != nil {
		return shared.NewDomainErrorf("INVALID_TRANSITION", "document %s was already posted and cannot be canceled", d.Barcode)
	}

	previous := d.CurrentStatus
	d.CurrentStatus = target
	if target == StatusStarted && d.StartedAt == nil {
		started := now
		d.StartedAt = &started
	}
	if target.IsTerminal() {
		ended := now
		d.EndedAt = &ended
	}
	d.appendStatus(target, userID, note, now)
	d.UpdatedAt = now
	d.IncrementVersion()

	d.AddDomainEvent(NewDocumentStatusChangedEvent(d, previous, target))
	return nil
}

// MarkPosted records that the posting engine consumed this document.
// A second call fails: re-applying would double-count inventory.
func (d *Document) MarkPosted(now time.Time) error {
	if d.PostedAt != nil {
		return shared.NewDomainErrorf("ALREADY_POSTED", "document %s was already posted at %s", d.Barcode, d.PostedAt.Format(time.RFC3339))
	}
	posted := now
	d.PostedAt = &posted
	d.UpdatedAt = now
	d.AddDomainEvent(NewDocumentPostedEvent(d))
	return nil
}

// IsPosted reports whether inventory effects were applied.
func (d *Document) IsPosted() bool {
	return d.PostedAt != nil
}

func (d *Document) appendStatus(status Status, userID uuid.UUID, note string, now time.Time) {
	d.StatusHistory = append(d.StatusHistory, StatusChange{
		ID:          uuid.New(),
		DocumentID:  d.ID,
		Status:      status,
		UserID:      userID,
		Description: note,
		CreatedAt:   now,
	})
}
