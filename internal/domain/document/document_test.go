package document

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mysticum/wms/internal/domain/catalog"
	"github.com/mysticum/wms/internal/domain/shared"
)

var testNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func newTestType(t *testing.T, symbol string) *catalog.DocumentType {
	t.Helper()
	dt, err := catalog.NewDocumentType("test", symbol, symbol+" document", false)
	require.NoError(t, err)
	return dt
}

func newTestDocument(t *testing.T, symbol string) *Document {
	t.Helper()
	d, err := NewDocument(newTestType(t, symbol), uuid.New(), uuid.New(), testNow)
	require.NoError(t, err)
	return d
}

func TestNewDocument_InitialStatus(t *testing.T) {
	delivery := newTestDocument(t, catalog.SymbolGoodsReceipt)
	assert.Equal(t, StatusCreated, delivery.CurrentStatus)
	require.Len(t, delivery.StatusHistory, 1)
	assert.Equal(t, StatusCreated, delivery.StatusHistory[0].Status)

	order := newTestDocument(t, catalog.SymbolTransferOrder)
	assert.Equal(t, StatusGenerated, order.CurrentStatus)
}

func TestNewDocument_Validation(t *testing.T) {
	dt := newTestType(t, catalog.SymbolGoodsReceipt)

	_, err := NewDocument(nil, uuid.New(), uuid.New(), testNow)
	assert.Error(t, err)

	_, err = NewDocument(dt, uuid.Nil, uuid.New(), testNow)
	assert.Error(t, err)

	_, err = NewDocument(dt, uuid.New(), uuid.Nil, testNow)
	assert.Error(t, err)
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusCreated, StatusStarted, true},
		{StatusCreated, StatusCompleted, true},
		{StatusCreated, StatusCanceled, true},
		{StatusGenerated, StatusStarted, true},
		{StatusStarted, StatusCompleted, true},
		{StatusStarted, StatusClosed, true},
		{StatusStarted, StatusCreated, false},
		{StatusCompleted, StatusStarted, false},
		{StatusCompleted, StatusCanceled, false},
		{StatusCanceled, StatusStarted, false},
		{StatusClosed, StatusCompleted, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestDocument_TransitionTo(t *testing.T) {
	d := newTestDocument(t, catalog.SymbolGoodsReceipt)
	userID := uuid.New()

	require.NoError(t, d.TransitionTo(StatusStarted, userID, "picking", testNow))
	assert.Equal(t, StatusStarted, d.CurrentStatus)
	require.NotNil(t, d.StartedAt)
	assert.Equal(t, testNow, *d.StartedAt)

	require.NoError(t, d.TransitionTo(StatusCompleted, userID, "", testNow.Add(time.Hour)))
	assert.Equal(t, StatusCompleted, d.CurrentStatus)
	require.NotNil(t, d.EndedAt)

	// audit trail is append-only: initial + two transitions
	assert.Len(t, d.StatusHistory, 3)

	err := d.TransitionTo(StatusStarted, userID, "", testNow.Add(2*time.Hour))
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_TRANSITION", derr.Code)
}

func TestDocument_CancelAfterPostingRejected(t *testing.T) {
	d := newTestDocument(t, catalog.SymbolGoodsReceipt)
	require.NoError(t, d.TransitionTo(StatusStarted, uuid.New(), "", testNow))
	require.NoError(t, d.MarkPosted(testNow))

	err := d.TransitionTo(StatusCanceled, uuid.New(), "", testNow)
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INVALID_TRANSITION", derr.Code)
}

func TestDocument_AddItem(t *testing.T) {
	d := newTestDocument(t, catalog.SymbolGoodsReceipt)
	productID := uuid.New()

	err := d.AddItem(productID, 10, decimal.NewFromFloat(2.50), nil, nil, "", testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(10), d.TotalQuantity)
	assert.True(t, d.TotalPrice.Equal(decimal.NewFromInt(25)))

	// a product appears at most once per document
	err = d.AddItem(productID, 5, decimal.Zero, nil, nil, "", testNow)
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ALREADY_EXISTS", derr.Code)

	err = d.AddItem(uuid.New(), 0, decimal.Zero, nil, nil, "", testNow)
	assert.Error(t, err, "zero quantity rejected")
	err = d.AddItem(uuid.New(), -3, decimal.Zero, nil, nil, "", testNow)
	assert.Error(t, err, "negative quantity rejected")
}

func TestDocument_AddItemFrozenAfterTerminal(t *testing.T) {
	d := newTestDocument(t, catalog.SymbolGoodsReceipt)
	require.NoError(t, d.AddItem(uuid.New(), 1, decimal.Zero, nil, nil, "", testNow))
	require.NoError(t, d.TransitionTo(StatusCompleted, uuid.New(), "", testNow))

	err := d.AddItem(uuid.New(), 1, decimal.Zero, nil, nil, "", testNow)
	assert.Error(t, err)
}

func TestDocument_MarkPostedOnlyOnce(t *testing.T) {
	d := newTestDocument(t, catalog.SymbolGoodsReceipt)
	require.NoError(t, d.MarkPosted(testNow))
	assert.True(t, d.IsPosted())

	err := d.MarkPosted(testNow.Add(time.Minute))
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ALREADY_POSTED", derr.Code)
	assert.Equal(t, testNow, *d.PostedAt, "first posting time preserved")
}

func TestDocument_AddCommitteeMember(t *testing.T) {
	d := newTestDocument(t, catalog.SymbolCountPartialOrder)
	member := uuid.New()
	d.AddCommitteeMember(member)
	d.AddCommitteeMember(member)
	assert.Len(t, d.Committee, 1)
}
