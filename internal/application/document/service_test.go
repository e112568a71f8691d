package document

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mysticum/wms/internal/domain/catalog"
	"github.com/mysticum/wms/internal/domain/document"
	domainidentity "github.com/mysticum/wms/internal/domain/identity"
	"github.com/mysticum/wms/internal/domain/inventory"
	"github.com/mysticum/wms/internal/domain/shared"
	"github.com/mysticum/wms/internal/domain/topology"
)

var testNow = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

// ===================== Fakes =====================

type fakeDocumentRepo struct {
	docs map[uuid.UUID]*document.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[uuid.UUID]*document.Document)}
}

func (r *fakeDocumentRepo) FindByID(_ context.Context, id uuid.UUID) (*document.Document, error) {
	if d, ok := r.docs[id]; ok {
		return d, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeDocumentRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeDocumentRepo) FindByBarcode(_ context.Context, barcode string) (*document.Document, error) {
	for _, d := range r.docs {
		if d.Barcode == barcode {
			return d, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeDocumentRepo) FindAll(_ context.Context, _ shared.Filter) ([]document.Document, error) {
	var out []document.Document
	for _, d := range r.docs {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDocumentRepo) FindByLinkedDocument(_ context.Context, linkedID uuid.UUID) ([]document.Document, error) {
	var out []document.Document
	for _, d := range r.docs {
		if d.LinkedDocumentID != nil && *d.LinkedDocumentID == linkedID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.docs)), nil
}

func (r *fakeDocumentRepo) Save(_ context.Context, d *document.Document) error {
	r.docs[d.ID] = d
	return nil
}

type fakeSequenceRepo struct {
	counters map[string]int
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{counters: make(map[string]int)}
}

func (r *fakeSequenceRepo) NextNumber(_ context.Context, symbol string, departmentID uuid.UUID, year int) (int, error) {
	key := fmt.Sprintf("%s/%s/%d", symbol, departmentID, year)
	r.counters[key]++
	return r.counters[key], nil
}

type fakeLotRepo struct {
	lots map[uuid.UUID]*inventory.Lot
}

func newFakeLotRepo() *fakeLotRepo {
	return &fakeLotRepo{lots: make(map[uuid.UUID]*inventory.Lot)}
}

func (r *fakeLotRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Lot, error) {
	if lot, ok := r.lots[id]; ok {
		return lot, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeLotRepo) FindByKey(_ context.Context, productID, cellID uuid.UUID, expirationDate *time.Time, serial string) (*inventory.Lot, error) {
	for _, lot := range r.lots {
		if lot.SameKey(productID, cellID, expirationDate, serial) {
			return lot, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeLotRepo) FindByCell(_ context.Context, cellID uuid.UUID) ([]inventory.Lot, error) {
	var out []inventory.Lot
	for _, lot := range r.lots {
		if lot.CellID == cellID {
			out = append(out, *lot)
		}
	}
	return out, nil
}

func (r *fakeLotRepo) FindByProduct(_ context.Context, productID uuid.UUID, _ shared.Filter) ([]inventory.Lot, error) {
	var out []inventory.Lot
	for _, lot := range r.lots {
		if lot.ProductID == productID {
			out = append(out, *lot)
		}
	}
	return out, nil
}

func (r *fakeLotRepo) FindByCells(_ context.Context, cellIDs []uuid.UUID) ([]inventory.Lot, error) {
	var out []inventory.Lot
	for _, lot := range r.lots {
		for _, id := range cellIDs {
			if lot.CellID == id {
				out = append(out, *lot)
			}
		}
	}
	return out, nil
}

func (r *fakeLotRepo) Save(_ context.Context, lot *inventory.Lot) error {
	r.lots[lot.ID] = lot
	return nil
}

func (r *fakeLotRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.lots, id)
	return nil
}

type fakeTypeRepo struct {
	types map[string]*catalog.DocumentType
}

func newFakeTypeRepo(t *testing.T) *fakeTypeRepo {
	t.Helper()
	repo := &fakeTypeRepo{types: make(map[string]*catalog.DocumentType)}
	seed := []struct {
		symbol   string
		verified bool
	}{
		{catalog.SymbolGoodsReceipt, true},
		{catalog.SymbolExternalReceipt, false},
		{catalog.SymbolExternalShipment, false},
		{catalog.SymbolShipmentOrder, true},
		{catalog.SymbolInternalTransfer, false},
		{catalog.SymbolCountPartialOrder, true},
		{catalog.SymbolCountPartialPlus, false},
		{catalog.SymbolCountPartialMinus, false},
	}
	for _, s := range seed {
		dt, err := catalog.NewDocumentType("test", s.symbol, s.symbol, s.verified)
		require.NoError(t, err)
		repo.types[s.symbol] = dt
	}
	return repo
}

func (r *fakeTypeRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.DocumentType, error) {
	for _, dt := range r.types {
		if dt.ID == id {
			return dt, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTypeRepo) FindBySymbol(_ context.Context, symbol string) (*catalog.DocumentType, error) {
	if dt, ok := r.types[symbol]; ok {
		return dt, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeTypeRepo) FindAll(_ context.Context) ([]catalog.DocumentType, error) {
	var out []catalog.DocumentType
	for _, dt := range r.types {
		out = append(out, *dt)
	}
	return out, nil
}

func (r *fakeTypeRepo) Save(_ context.Context, dt *catalog.DocumentType) error {
	r.types[dt.Symbol] = dt
	return nil
}

type fakeStatusRepo struct {
	byType map[uuid.UUID][]catalog.Status
}

// newFakeStatusRepo seeds the per-type status sets the way the schema seed
// does: orders run Generated -> ... -> Closed, everything else Created ->
// Started -> Completed/Canceled.
func newFakeStatusRepo(t *testing.T, types *fakeTypeRepo) *fakeStatusRepo {
	t.Helper()
	repo := &fakeStatusRepo{byType: make(map[uuid.UUID][]catalog.Status)}
	for _, dt := range types.types {
		names := []string{"Created", "Started", "Completed", "Canceled"}
		if catalog.IsOrderSymbol(dt.Symbol) {
			names = []string{"Generated", "Started", "Completed", "Canceled", "Closed"}
		}
		for _, name := range names {
			status, err := catalog.NewStatus(dt.ID, name)
			require.NoError(t, err)
			repo.byType[dt.ID] = append(repo.byType[dt.ID], *status)
		}
	}
	return repo
}

func (r *fakeStatusRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Status, error) {
	for _, statuses := range r.byType {
		for i := range statuses {
			if statuses[i].ID == id {
				return &statuses[i], nil
			}
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeStatusRepo) FindByDocumentType(_ context.Context, documentTypeID uuid.UUID) ([]catalog.Status, error) {
	return r.byType[documentTypeID], nil
}

func (r *fakeStatusRepo) Save(_ context.Context, s *catalog.Status) error {
	r.byType[s.DocumentTypeID] = append(r.byType[s.DocumentTypeID], *s)
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindBySKU(_ context.Context, sku string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.products[p.ID] = p
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domainidentity.User
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domainidentity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) FindByLogin(_ context.Context, login string) (*domainidentity.User, error) {
	for _, u := range r.users {
		if u.Login == login {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) Save(_ context.Context, u *domainidentity.User) error {
	r.users[u.ID] = u
	return nil
}

type fakeTopologyRepo struct {
	warehouses  map[uuid.UUID]*topology.Warehouse
	departments map[uuid.UUID]*topology.Department
}

func (r *fakeTopologyRepo) FindWarehouseByID(_ context.Context, id uuid.UUID) (*topology.Warehouse, error) {
	if w, ok := r.warehouses[id]; ok {
		return w, nil
	}
	return nil, shared.ErrNotFound
}
func (r *fakeTopologyRepo) FindAllWarehouses(_ context.Context, _ shared.Filter) ([]topology.Warehouse, error) {
	return nil, nil
}
func (r *fakeTopologyRepo) SaveWarehouse(_ context.Context, w *topology.Warehouse) error {
	r.warehouses[w.ID] = w
	return nil
}
func (r *fakeTopologyRepo) FindDepartmentByID(_ context.Context, id uuid.UUID) (*topology.Department, error) {
	if d, ok := r.departments[id]; ok {
		return d, nil
	}
	return nil, shared.ErrNotFound
}
func (r *fakeTopologyRepo) FindDepartmentsByWarehouse(_ context.Context, _ uuid.UUID) ([]topology.Department, error) {
	return nil, nil
}
func (r *fakeTopologyRepo) SaveDepartment(_ context.Context, d *topology.Department) error {
	r.departments[d.ID] = d
	return nil
}
func (r *fakeTopologyRepo) FindCellByID(_ context.Context, _ uuid.UUID) (*topology.Cell, error) {
	return nil, shared.ErrNotFound
}
func (r *fakeTopologyRepo) FindCellByBarcode(_ context.Context, _ string) (*topology.Cell, error) {
	return nil, shared.ErrNotFound
}
func (r *fakeTopologyRepo) SaveCell(_ context.Context, _ *topology.Cell) error { return nil }
func (r *fakeTopologyRepo) FindLevelByID(_ context.Context, _ uuid.UUID) (*topology.Level, error) {
	return nil, shared.ErrNotFound
}
func (r *fakeTopologyRepo) FindSectionByID(_ context.Context, _ uuid.UUID) (*topology.Section, error) {
	return nil, shared.ErrNotFound
}
func (r *fakeTopologyRepo) FindRowByID(_ context.Context, _ uuid.UUID) (*topology.Row, error) {
	return nil, shared.ErrNotFound
}
func (r *fakeTopologyRepo) CellsOfDepartment(_ context.Context, _ uuid.UUID) ([]topology.Cell, error) {
	return nil, nil
}

// ===================== Fixture =====================

type fixture struct {
	service   *Service
	docs      *fakeDocumentRepo
	lots      *fakeLotRepo
	products  *fakeProductRepo
	topo      *fakeTopologyRepo
	warehouse *topology.Warehouse
	deptID    uuid.UUID
	manager   *domainidentity.User
	worker    *domainidentity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	docs := newFakeDocumentRepo()
	lots := newFakeLotRepo()
	seq := newFakeSequenceRepo()

	warehouse, err := topology.NewWarehouse("Central", "M1", "Magazynowa 7, Gdańsk")
	require.NoError(t, err)
	manager, err := domainidentity.NewUser("manager", "hash", domainidentity.RoleManager, warehouse.ID)
	require.NoError(t, err)
	worker, err := domainidentity.NewUser("worker", "hash", domainidentity.RoleWorker, warehouse.ID)
	require.NoError(t, err)

	dept, err := topology.NewDepartment(warehouse.ID, "01", "main floor")
	require.NoError(t, err)
	defaultCell := uuid.New()
	dept.SetDefaultCell(defaultCell)

	products := &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
	topo := &fakeTopologyRepo{
		warehouses:  map[uuid.UUID]*topology.Warehouse{warehouse.ID: warehouse},
		departments: map[uuid.UUID]*topology.Department{dept.ID: dept},
	}
	users := &fakeUserRepo{users: map[uuid.UUID]*domainidentity.User{manager.ID: manager, worker.ID: worker}}

	types := newFakeTypeRepo(t)
	service := NewService(
		NewNoOpTransactionScope(docs, seq, lots),
		types,
		newFakeStatusRepo(t, types),
		products,
		users,
		topo,
		shared.FixedClock{Instant: testNow},
		zap.NewNop(),
	)

	return &fixture{
		service:   service,
		docs:      docs,
		lots:      lots,
		products:  products,
		topo:      topo,
		warehouse: warehouse,
		deptID:    dept.ID,
		manager:   manager,
		worker:    worker,
	}
}

func (f *fixture) addProduct(t *testing.T, price, weight int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("widget", "59000000", uuid.NewString(), decimal.NewFromInt(price), decimal.NewFromInt(weight))
	require.NoError(t, err)
	f.products.products[p.ID] = p
	return p
}

// ===================== Tests =====================

func TestService_Create(t *testing.T) {
	f := newFixture(t)
	product := f.addProduct(t, 5, 2)
	cellID := uuid.New()

	resp, err := f.service.Create(context.Background(), f.manager.ID, CreateDocumentRequest{
		TypeSymbol:         catalog.SymbolExternalReceipt,
		OriginDepartmentID: f.deptID,
		Items: []CreateLineItemRequest{
			{ProductID: product.ID, Amount: 10, CellID: &cellID},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Number)
	assert.Equal(t, "PZ/0001/2403/01", resp.Barcode)
	assert.Equal(t, document.StatusCreated.String(), resp.Status)
	assert.Equal(t, int64(10), resp.TotalQuantity)
	// unit price defaults to the catalog price
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(50)))
	assert.True(t, resp.TotalWeight.Equal(decimal.NewFromInt(20)))
}

func TestService_Create_SequentialNumbers(t *testing.T) {
	f := newFixture(t)
	product := f.addProduct(t, 1, 1)
	cellID := uuid.New()

	req := CreateDocumentRequest{
		TypeSymbol:         catalog.SymbolExternalReceipt,
		OriginDepartmentID: f.deptID,
		Items:              []CreateLineItemRequest{{ProductID: product.ID, Amount: 1, CellID: &cellID}},
	}
	first, err := f.service.Create(context.Background(), f.manager.ID, req)
	require.NoError(t, err)
	second, err := f.service.Create(context.Background(), f.manager.ID, req)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, second.Number)
}

func TestService_Create_WorkerCannotCreateVerifiedTypes(t *testing.T) {
	f := newFixture(t)
	product := f.addProduct(t, 1, 1)

	_, err := f.service.Create(context.Background(), f.worker.ID, CreateDocumentRequest{
		TypeSymbol:         catalog.SymbolGoodsReceipt,
		OriginDepartmentID: f.deptID,
		Items:              []CreateLineItemRequest{{ProductID: product.ID, Amount: 1}},
	})
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "UNAUTHORIZED", derr.Code)
}

func TestService_Create_OrderStartsGenerated(t *testing.T) {
	f := newFixture(t)
	product := f.addProduct(t, 1, 1)

	resp, err := f.service.Create(context.Background(), f.manager.ID, CreateDocumentRequest{
		TypeSymbol:         catalog.SymbolShipmentOrder,
		OriginDepartmentID: f.deptID,
		Address:            "Długa 1, Gdańsk",
		Carrier:            "DPD",
		Items:              []CreateLineItemRequest{{ProductID: product.ID, Amount: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, document.StatusGenerated.String(), resp.Status)
}

func TestService_Create_LinkedResponseFulfillsOrder(t *testing.T) {
	f := newFixture(t)
	product := f.addProduct(t, 1, 1)
	cellID := uuid.New()

	order, err := f.service.Create(context.Background(), f.manager.ID, CreateDocumentRequest{
		TypeSymbol:         catalog.SymbolShipmentOrder,
		OriginDepartmentID: f.deptID,
		Address:            "Długa 1, Gdańsk",
		Carrier:            "DPD",
		Items:              []CreateLineItemRequest{{ProductID: product.ID, Amount: 10}},
	})
	require.NoError(t, err)

	resp, err := f.service.Create(context.Background(), f.manager.ID, CreateDocumentRequest{
		TypeSymbol:         catalog.SymbolExternalShipment,
		OriginDepartmentID: f.deptID,
		LinkedDocumentID:   &order.ID,
		Items:              []CreateLineItemRequest{{ProductID: product.ID, Amount: 4, CellID: &cellID}},
	})
	require.NoError(t, err)

	// address and carrier default from the order
	assert.Equal(t, "Długa 1, Gdańsk", resp.Address)
	assert.Equal(t, "DPD", resp.Carrier)

	stored, err := f.docs.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	line, ok := stored.ItemByProduct(product.ID)
	require.True(t, ok)
	assert.Equal(t, int64(4), line.Fulfilled())

	outstanding, err := f.service.GetOutstanding(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, outstanding, 1)
	assert.Equal(t, int64(6), outstanding[0].Remaining)
}

func TestService_Create_OrphanLineRejected(t *testing.T) {
	f := newFixture(t)
	ordered := f.addProduct(t, 1, 1)
	other := f.addProduct(t, 1, 1)
	cellID := uuid.New()

	order, err := f.service.Create(context.Background(), f.manager.ID, CreateDocumentRequest{
		TypeSymbol:         catalog.SymbolShipmentOrder,
		OriginDepartmentID: f.deptID,
		Items:              []CreateLineItemRequest{{ProductID: ordered.ID, Amount: 5}},
	})
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), f.manager.ID, CreateDocumentRequest{
		TypeSymbol:         catalog.SymbolExternalShipment,
		OriginDepartmentID: f.deptID,
		LinkedDocumentID:   &order.ID,
		Items:              []CreateLineItemRequest{{ProductID: other.ID, Amount: 5, CellID: &cellID}},
	})
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ORPHAN_LINE_ITEM", derr.Code)
}

func TestService_Create_ShipmentOrderResolvesAddress(t *testing.T) {
	f := newFixture(t)
	product := f.addProduct(t, 1, 1)

	// second department in the same warehouse as the shipment target
	dest, err := topology.NewDepartment(f.warehouse.ID, "02", "dispatch")
	require.NoError(t, err)
	f.topo.departments[dest.ID] = dest

	resp, err := f.service.Create(context.Background(), f.manager.ID, CreateDocumentRequest{
		TypeSymbol:              catalog.SymbolShipmentOrder,
		OriginDepartmentID:      f.deptID,
		DestinationDepartmentID: &dest.ID,
		Items:                   []CreateLineItemRequest{{ProductID: product.ID, Amount: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, f.warehouse.Address, resp.Address)

	// an explicit address wins over the resolved one
	resp, err = f.service.Create(context.Background(), f.manager.ID, CreateDocumentRequest{
		TypeSymbol:              catalog.SymbolShipmentOrder,
		OriginDepartmentID:      f.deptID,
		DestinationDepartmentID: &dest.ID,
		Address:                 "Długa 1, Gdańsk",
		Items:                   []CreateLineItemRequest{{ProductID: product.ID, Amount: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Długa 1, Gdańsk", resp.Address)
}

func TestService_Create_ShipmentOrderUnknownDestination(t *testing.T) {
	f := newFixture(t)
	product := f.addProduct(t, 1, 1)
	missing := uuid.New()

	_, err := f.service.Create(context.Background(), f.manager.ID, CreateDocumentRequest{
		TypeSymbol:              catalog.SymbolShipmentOrder,
		OriginDepartmentID:      f.deptID,
		DestinationDepartmentID: &missing,
		Items:                   []CreateLineItemRequest{{ProductID: product.ID, Amount: 3}},
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_Transition_UndefinedStatusRejected(t *testing.T) {
	f := newFixture(t)
	product := f.addProduct(t, 1, 1)
	cellID := uuid.New()

	resp, err := f.service.Create(context.Background(), f.manager.ID, CreateDocumentRequest{
		TypeSymbol:         catalog.SymbolExternalReceipt,
		OriginDepartmentID: f.deptID,
		Items:              []CreateLineItemRequest{{ProductID: product.ID, Amount: 5, CellID: &cellID}},
	})
	require.NoError(t, err)

	// "Misplaced" is nobody's status; "Closed" exists only for orders
	for _, target := range []string{"Misplaced", "Closed"} {
		_, err = f.service.Transition(context.Background(), f.manager.ID, resp.ID, TransitionRequest{Status: target})
		require.Error(t, err, target)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_TRANSITION", derr.Code)
	}

	stored, err := f.docs.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, document.StatusCreated, stored.CurrentStatus)
}

func TestService_Transition_CompletedPostsInventory(t *testing.T) {
	f := newFixture(t)
	product := f.addProduct(t, 1, 1)
	cellID := uuid.New()

	resp, err := f.service.Create(context.Background(), f.manager.ID, CreateDocumentRequest{
		TypeSymbol:         catalog.SymbolExternalReceipt,
		OriginDepartmentID: f.deptID,
		Items:              []CreateLineItemRequest{{ProductID: product.ID, Amount: 50, CellID: &cellID}},
	})
	require.NoError(t, err)

	done, err := f.service.Transition(context.Background(), f.manager.ID, resp.ID, TransitionRequest{Status: "Completed"})
	require.NoError(t, err)
	assert.Equal(t, document.StatusCompleted.String(), done.Status)
	require.NotNil(t, done.PostedAt)

	lot, err := f.lots.FindByKey(context.Background(), product.ID, cellID, nil, "")
	require.NoError(t, err)
	assert.Equal(t, int64(50), lot.Quantity)
}

func TestService_Transition_TerminalIsFinal(t *testing.T) {
	f := newFixture(t)
	product := f.addProduct(t, 1, 1)
	cellID := uuid.New()

	resp, err := f.service.Create(context.Background(), f.manager.ID, CreateDocumentRequest{
		TypeSymbol:         catalog.SymbolExternalReceipt,
		OriginDepartmentID: f.deptID,
		Items:              []CreateLineItemRequest{{ProductID: product.ID, Amount: 5, CellID: &cellID}},
	})
	require.NoError(t, err)

	_, err = f.service.Transition(context.Background(), f.manager.ID, resp.ID, TransitionRequest{Status: "Completed"})
	require.NoError(t, err)

	_, err = f.service.Transition(context.Background(), f.manager.ID, resp.ID, TransitionRequest{Status: "Started"})
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_TRANSITION", derr.Code)

	// posting happened exactly once
	lot, err := f.lots.FindByKey(context.Background(), product.ID, cellID, nil, "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), lot.Quantity)
}

func TestService_Transition_GoodsReceiptUsesDefaultCell(t *testing.T) {
	f := newFixture(t)
	product := f.addProduct(t, 1, 1)

	resp, err := f.service.Create(context.Background(), f.manager.ID, CreateDocumentRequest{
		TypeSymbol:         catalog.SymbolGoodsReceipt,
		OriginDepartmentID: f.deptID,
		Items:              []CreateLineItemRequest{{ProductID: product.ID, Amount: 7}},
	})
	require.NoError(t, err)

	_, err = f.service.Transition(context.Background(), f.manager.ID, resp.ID, TransitionRequest{Status: "Completed"})
	require.NoError(t, err)

	require.Len(t, f.lots.lots, 1)
	for _, lot := range f.lots.lots {
		assert.Equal(t, int64(7), lot.Quantity)
	}
}

func TestService_CloseCount_CreatesFixingDocuments(t *testing.T) {
	f := newFixture(t)
	over := f.addProduct(t, 2, 1)
	under := f.addProduct(t, 3, 1)
	cellID := uuid.New()

	// seed stock so the shortage has something to subtract from
	receipt, err := f.service.Create(context.Background(), f.manager.ID, CreateDocumentRequest{
		TypeSymbol:         catalog.SymbolExternalReceipt,
		OriginDepartmentID: f.deptID,
		Items: []CreateLineItemRequest{
			{ProductID: over.ID, Amount: 5, CellID: &cellID},
			{ProductID: under.ID, Amount: 8, CellID: &cellID},
		},
	})
	require.NoError(t, err)
	_, err = f.service.Transition(context.Background(), f.manager.ID, receipt.ID, TransitionRequest{Status: "Completed"})
	require.NoError(t, err)

	order, err := f.service.Create(context.Background(), f.manager.ID, CreateDocumentRequest{
		TypeSymbol:         catalog.SymbolCountPartialOrder,
		OriginDepartmentID: f.deptID,
		Items: []CreateLineItemRequest{
			{ProductID: over.ID, Amount: 5, CellID: &cellID},
			{ProductID: under.ID, Amount: 8, CellID: &cellID},
		},
	})
	require.NoError(t, err)

	// record the physical count: 7 found where 5 expected, 2 where 8
	stored, err := f.docs.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	line, _ := stored.ItemByProduct(over.ID)
	line.AddFulfilled(7, testNow)
	line, _ = stored.ItemByProduct(under.ID)
	line.AddFulfilled(2, testNow)

	_, err = f.service.Transition(context.Background(), f.manager.ID, order.ID, TransitionRequest{Status: "Closed"})
	require.NoError(t, err)

	// receipt + order + IC+ + IC-
	assert.Len(t, f.docs.docs, 4)
	linked, err := f.docs.FindByLinkedDocument(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, linked, 2)
	symbols := map[string]bool{}
	for _, d := range linked {
		symbols[d.TypeSymbol] = true
		assert.Equal(t, document.StatusCompleted, d.CurrentStatus)
		assert.NotNil(t, d.PostedAt)
	}
	assert.True(t, symbols[catalog.SymbolCountPartialPlus])
	assert.True(t, symbols[catalog.SymbolCountPartialMinus])

	// stock reconciled to the counted amounts
	overLot, err := f.lots.FindByKey(context.Background(), over.ID, cellID, nil, "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), overLot.Quantity)
	underLot, err := f.lots.FindByKey(context.Background(), under.ID, cellID, nil, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), underLot.Quantity)
}
