package document

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/mysticum/wms/internal/domain/catalog"
	"github.com/mysticum/wms/internal/domain/document"
	"github.com/mysticum/wms/internal/domain/inventory"
	"github.com/mysticum/wms/internal/domain/shared"
	"github.com/mysticum/wms/internal/domain/topology"

	domainidentity "github.com/mysticum/wms/internal/domain/identity"
	"github.com/mysticum/wms/internal/infrastructure/telemetry"
)

// Service is the document lifecycle controller. Every write path runs in a
// transaction scope: numbering, creation, fulfillment propagation, posting
// and count closure commit or roll back as one unit.
type Service struct {
	tx       TransactionScope
	types    catalog.DocumentTypeRepository
	statuses catalog.StatusRepository
	products catalog.ProductRepository
	users    domainidentity.UserRepository
	topo     topology.Repository
	linker   *document.Linker
	clock    shared.Clock
	logger   *zap.Logger
}

// NewService creates a document service.
func NewService(
	tx TransactionScope,
	types catalog.DocumentTypeRepository,
	statuses catalog.StatusRepository,
	products catalog.ProductRepository,
	users domainidentity.UserRepository,
	topo topology.Repository,
	clock shared.Clock,
	logger *zap.Logger,
) *Service {
	return &Service{
		tx:       tx,
		types:    types,
		statuses: statuses,
		products: products,
		users:    users,
		topo:     topo,
		linker:   document.NewLinker(),
		clock:    clock,
		logger:   logger,
	}
}

// ===================== Query Methods =====================

// GetByID retrieves a document with its lines and audit trail.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	var resp *DocumentResponse
	err := s.tx.Execute(ctx, func(repos TransactionalRepositories) error {
		doc, err := repos.DocumentRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		r := ToDocumentResponse(doc)
		resp = &r
		return nil
	})
	return resp, err
}

// GetByBarcode retrieves a document by its barcode label.
func (s *Service) GetByBarcode(ctx context.Context, barcode string) (*DocumentResponse, error) {
	var resp *DocumentResponse
	err := s.tx.Execute(ctx, func(repos TransactionalRepositories) error {
		doc, err := repos.DocumentRepo().FindByBarcode(ctx, barcode)
		if err != nil {
			return err
		}
		r := ToDocumentResponse(doc)
		resp = &r
		return nil
	})
	return resp, err
}

// List retrieves a paginated document list.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]DocumentListResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.TypeSymbol != "" {
		domainFilter.Filters["type_symbol"] = filter.TypeSymbol
	}
	if filter.Status != "" {
		domainFilter.Filters["current_status"] = filter.Status
	}
	if filter.DepartmentID != nil {
		domainFilter.Filters["origin_department_id"] = *filter.DepartmentID
	}

	var docs []document.Document
	var total int64
	err := s.tx.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		if total, err = repos.DocumentRepo().Count(ctx, domainFilter); err != nil {
			return err
		}
		docs, err = repos.DocumentRepo().FindAll(ctx, domainFilter)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return ToDocumentListResponses(docs), total, nil
}

// GetOutstanding reports the unfulfilled remainder per product on an order.
func (s *Service) GetOutstanding(ctx context.Context, orderID uuid.UUID) ([]OutstandingResponse, error) {
	var out []OutstandingResponse
	err := s.tx.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.DocumentRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		for productID, remaining := range s.linker.Outstanding(order) {
			out = append(out, OutstandingResponse{ProductID: productID, Remaining: remaining})
		}
		return nil
	})
	return out, err
}

// ===================== Command Methods =====================

// Create creates a document: assigns the next sequence number, renders the
// barcode, records the initial status, and propagates fulfillment into the
// linked order when one is named. Verification-required types demand a
// managerial actor.
func (s *Service) Create(ctx context.Context, actorID uuid.UUID, req CreateDocumentRequest) (*DocumentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "document", "create",
		attribute.String(telemetry.SpanAttrDocumentType, req.TypeSymbol))
	defer span.End()

	docType, err := s.types.FindBySymbol(ctx, req.TypeSymbol)
	if err != nil {
		return nil, err
	}

	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if docType.RequiresVerification && !actor.Role.IsManagerial() {
		return nil, shared.NewDomainErrorf("UNAUTHORIZED", "role %s may not create %s documents", actor.Role, docType.Symbol)
	}

	dept, err := s.topo.FindDepartmentByID(ctx, req.OriginDepartmentID)
	if err != nil {
		return nil, err
	}

	// Shipment orders deliver to the destination department; when the
	// caller gives no address, it comes from that department's warehouse.
	address := req.Address
	if docType.Symbol == catalog.SymbolShipmentOrder && address == "" && req.DestinationDepartmentID != nil {
		resolved, err := s.resolveDeliveryAddress(ctx, *req.DestinationDepartmentID)
		if err != nil {
			return nil, err
		}
		address = resolved
	}

	now := s.clock.Now()
	var resp *DocumentResponse
	err = s.tx.Execute(ctx, func(repos TransactionalRepositories) error {
		doc, err := document.NewDocument(docType, req.OriginDepartmentID, actorID, now)
		if err != nil {
			return err
		}

		number, err := repos.SequenceRepo().NextNumber(ctx, docType.Symbol, req.OriginDepartmentID, now.Year())
		if err != nil {
			return err
		}
		doc.Number = number
		doc.Barcode = document.Barcode(docType.Symbol, number, now.Year(), now.Month(), dept.Number)

		doc.DestinationDepartmentID = req.DestinationDepartmentID
		doc.OriginCellID = req.OriginCellID
		doc.DestinationCellID = req.DestinationCellID
		doc.Address = address
		doc.Carrier = req.Carrier
		doc.Description = req.Description
		doc.RequiredAt = req.RequiredAt
		for _, memberID := range req.CommitteeMemberIDs {
			doc.AddCommitteeMember(memberID)
		}

		totalWeight := decimal.Zero
		for _, line := range req.Items {
			product, err := s.products.FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			unitPrice := line.UnitPrice
			if unitPrice.IsZero() {
				unitPrice = product.UnitPrice
			}
			if err := doc.AddItem(line.ProductID, line.Amount, unitPrice, line.CellID, line.ExpirationDate, line.Serial, now); err != nil {
				return err
			}
			totalWeight = totalWeight.Add(product.Weight.Mul(decimal.NewFromInt(line.Amount)))
		}
		doc.SetTotalWeight(totalWeight)

		if req.LinkedDocumentID != nil {
			if err := s.linkToOrder(ctx, repos, doc, *req.LinkedDocumentID, now); err != nil {
				return err
			}
		}

		if err := repos.DocumentRepo().Save(ctx, doc); err != nil {
			return err
		}

		s.logger.Info("document created",
			zap.String("barcode", doc.Barcode),
			zap.String("type", doc.TypeSymbol),
			zap.String("created_by", actorID.String()))

		r := ToDocumentResponse(doc)
		resp = &r
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.String(telemetry.SpanAttrBarcode, resp.Barcode))
	return resp, nil
}

// resolveDeliveryAddress looks up the address of the warehouse owning the
// destination department.
func (s *Service) resolveDeliveryAddress(ctx context.Context, departmentID uuid.UUID) (string, error) {
	destDept, err := s.topo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return "", err
	}
	warehouse, err := s.topo.FindWarehouseByID(ctx, destDept.WarehouseID)
	if err != nil {
		return "", err
	}
	return warehouse.Address, nil
}

// linkToOrder attaches a response document to its order: the order must be
// an order type, address and carrier default from it, and every response
// line adds to the order line's fulfilled amount.
func (s *Service) linkToOrder(ctx context.Context, repos TransactionalRepositories, doc *document.Document, orderID uuid.UUID, now time.Time) error {
	order, err := repos.DocumentRepo().FindByIDForUpdate(ctx, orderID)
	if err != nil {
		return err
	}
	if !catalog.IsOrderSymbol(order.TypeSymbol) {
		return shared.NewDomainErrorf("VALIDATION_ERROR", "document %s is not an order and cannot be fulfilled", order.Barcode)
	}
	doc.LinkedDocumentID = &order.ID
	if doc.Address == "" {
		doc.Address = order.Address
	}
	if doc.Carrier == "" {
		doc.Carrier = order.Carrier
	}
	if err := s.linker.ApplyFulfillment(doc, order, now); err != nil {
		return err
	}
	return repos.DocumentRepo().Save(ctx, order)
}

// Transition moves a document through its lifecycle. Entering Completed or
// Closed applies the type's inventory effects exactly once; closing an
// inventory count order first turns the count deviations into fixing
// documents, which post through the same path as any other document.
func (s *Service) Transition(ctx context.Context, actorID, docID uuid.UUID, req TransitionRequest) (*DocumentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "document", "transition",
		attribute.String(telemetry.SpanAttrDocumentID, docID.String()),
		attribute.String(telemetry.SpanAttrStatus, req.Status))
	defer span.End()

	target := document.Status(req.Status)
	now := s.clock.Now()

	var resp *DocumentResponse
	err := s.tx.Execute(ctx, func(repos TransactionalRepositories) error {
		doc, err := repos.DocumentRepo().FindByID(ctx, docID)
		if err != nil {
			return err
		}
		docType, err := s.types.FindBySymbol(ctx, doc.TypeSymbol)
		if err != nil {
			return err
		}

		defined, err := s.statusDefinedForType(ctx, docType.ID, target)
		if err != nil {
			return err
		}
		if !defined {
			return shared.NewDomainErrorf("INVALID_TRANSITION", "document %s: status %q is not defined for type %s", doc.Barcode, target, doc.TypeSymbol)
		}

		if !doc.CurrentStatus.CanTransitionTo(target) {
			return shared.NewDomainErrorf("INVALID_TRANSITION", "document %s: cannot transition from %s to %s", doc.Barcode, doc.CurrentStatus, target)
		}

		if (target == document.StatusCompleted || target == document.StatusClosed) &&
			catalog.IsInventoryCountOrderSymbol(doc.TypeSymbol) {
			if err := s.closeCount(ctx, repos, doc, actorID, now); err != nil {
				return err
			}
		}

		if s.shouldPost(docType, target, doc) {
			engine := inventory.NewEngine(repos.LotRepo(), s.topo, s.logger)
			if err := engine.Post(ctx, doc, docType, now); err != nil {
				return err
			}
			if err := doc.MarkPosted(now); err != nil {
				return err
			}
		}

		if err := doc.TransitionTo(target, actorID, req.Note, now); err != nil {
			return err
		}
		if err := repos.DocumentRepo().Save(ctx, doc); err != nil {
			return err
		}

		s.logger.Info("document transitioned",
			zap.String("barcode", doc.Barcode),
			zap.String("to", target.String()),
			zap.Bool("posted", doc.IsPosted()))

		r := ToDocumentResponse(doc)
		resp = &r
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return resp, nil
}

// statusDefinedForType checks the target against the type's status catalog.
func (s *Service) statusDefinedForType(ctx context.Context, documentTypeID uuid.UUID, target document.Status) (bool, error) {
	allowed, err := s.statuses.FindByDocumentType(ctx, documentTypeID)
	if err != nil {
		return false, err
	}
	for i := range allowed {
		if allowed[i].Name == target.String() {
			return true, nil
		}
	}
	return false, nil
}

// shouldPost reports whether entering target must apply inventory effects.
func (s *Service) shouldPost(docType *catalog.DocumentType, target document.Status, doc *document.Document) bool {
	if docType.Effect == catalog.EffectNone || doc.IsPosted() {
		return false
	}
	return target == document.StatusCompleted || target == document.StatusClosed
}

// closeCount compares counted against expected amounts on an inventory
// count order and creates the surplus/shortage fixing documents. The
// fixing documents run the full standard path: sequence number, barcode,
// posting, terminal status. A count that matched the books creates none.
func (s *Service) closeCount(ctx context.Context, repos TransactionalRepositories, order *document.Document, actorID uuid.UUID, now time.Time) error {
	closure := s.linker.CloseCount(order)

	plusSymbol := catalog.SymbolCountPartialPlus
	minusSymbol := catalog.SymbolCountPartialMinus
	if order.TypeSymbol == catalog.SymbolCountFullOrder {
		plusSymbol = catalog.SymbolCountFullPlus
		minusSymbol = catalog.SymbolCountFullMinus
	}

	if len(closure.Surplus) > 0 {
		if err := s.createFixing(ctx, repos, order, actorID, plusSymbol, closure.Surplus, now); err != nil {
			return err
		}
	}
	if len(closure.Shortage) > 0 {
		if err := s.createFixing(ctx, repos, order, actorID, minusSymbol, closure.Shortage, now); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) createFixing(ctx context.Context, repos TransactionalRepositories, order *document.Document, actorID uuid.UUID, symbol string, deviations []document.CountDeviation, now time.Time) error {
	docType, err := s.types.FindBySymbol(ctx, symbol)
	if err != nil {
		return err
	}
	dept, err := s.topo.FindDepartmentByID(ctx, order.OriginDepartmentID)
	if err != nil {
		return err
	}

	fixing, err := document.NewDocument(docType, order.OriginDepartmentID, actorID, now)
	if err != nil {
		return err
	}
	number, err := repos.SequenceRepo().NextNumber(ctx, symbol, order.OriginDepartmentID, now.Year())
	if err != nil {
		return err
	}
	fixing.Number = number
	fixing.Barcode = document.Barcode(symbol, number, now.Year(), now.Month(), dept.Number)
	fixing.LinkedDocumentID = &order.ID

	for _, dev := range deviations {
		if err := fixing.AddItem(dev.ProductID, dev.Quantity, dev.UnitPrice, dev.CellID, dev.ExpirationDate, dev.Serial, now); err != nil {
			return err
		}
	}

	engine := inventory.NewEngine(repos.LotRepo(), s.topo, s.logger)
	if err := engine.Post(ctx, fixing, docType, now); err != nil {
		return err
	}
	if err := fixing.MarkPosted(now); err != nil {
		return err
	}
	if err := fixing.TransitionTo(document.StatusCompleted, actorID, "count closure", now); err != nil {
		return err
	}
	if err := repos.DocumentRepo().Save(ctx, fixing); err != nil {
		return err
	}

	s.logger.Info("count closure document created",
		zap.String("order", order.Barcode),
		zap.String("barcode", fixing.Barcode),
		zap.Int("lines", len(deviations)))
	return nil
}
