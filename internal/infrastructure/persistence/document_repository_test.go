package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mysticum/wms/internal/domain/catalog"
	"github.com/mysticum/wms/internal/domain/document"
	"github.com/mysticum/wms/internal/domain/shared"
	"github.com/mysticum/wms/internal/infrastructure/persistence/models"
)

func setupDocumentTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.DocumentModel{},
		&models.LineItemModel{},
		&models.StatusChangeModel{},
		&models.CommitteeMemberModel{},
	)
	require.NoError(t, err)

	return db
}

func newSavedDocument(t *testing.T, repo *GormDocumentRepository, symbol string, number int) *document.Document {
	docType, err := catalog.NewDocumentType("test", symbol, symbol+" document", false)
	require.NoError(t, err)

	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	doc, err := document.NewDocument(docType, uuid.New(), uuid.New(), now)
	require.NoError(t, err)
	doc.Number = number
	doc.Barcode = document.Barcode(symbol, number, 2024, time.March, "01")

	cellID := uuid.New()
	require.NoError(t, doc.AddItem(uuid.New(), 10, decimal.NewFromInt(5), &cellID, nil, "", now))

	require.NoError(t, repo.Save(context.Background(), doc))
	return doc
}

func TestGormDocumentRepository_SaveAndLoad(t *testing.T) {
	db := setupDocumentTestDB(t)
	repo := NewGormDocumentRepository(db)
	ctx := context.Background()

	doc := newSavedDocument(t, repo, "PZ", 1)
	doc.AddCommitteeMember(uuid.New())
	require.NoError(t, repo.Save(ctx, doc))

	loaded, err := repo.FindByID(ctx, doc.ID)
	require.NoError(t, err)

	assert.Equal(t, doc.Barcode, loaded.Barcode)
	assert.Equal(t, "PZ", loaded.TypeSymbol)
	assert.Equal(t, document.StatusCreated, loaded.CurrentStatus)
	assert.Equal(t, int64(10), loaded.TotalQuantity)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, int64(10), loaded.Items[0].AmountRequired)
	require.Len(t, loaded.StatusHistory, 1)
	assert.Equal(t, document.StatusCreated, loaded.StatusHistory[0].Status)
	assert.Len(t, loaded.Committee, 1)
}

func TestGormDocumentRepository_FindByBarcode(t *testing.T) {
	db := setupDocumentTestDB(t)
	repo := NewGormDocumentRepository(db)
	ctx := context.Background()

	doc := newSavedDocument(t, repo, "PZ", 7)

	loaded, err := repo.FindByBarcode(ctx, doc.Barcode)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, loaded.ID)

	_, err = repo.FindByBarcode(ctx, "PZ/9999/2403/01")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormDocumentRepository_SaveRewritesAssociations(t *testing.T) {
	db := setupDocumentTestDB(t)
	repo := NewGormDocumentRepository(db)
	ctx := context.Background()

	doc := newSavedDocument(t, repo, "PZ", 2)

	// transition appends an audit entry and save must persist it exactly once
	now := time.Date(2024, time.March, 15, 11, 0, 0, 0, time.UTC)
	require.NoError(t, doc.TransitionTo(document.StatusStarted, uuid.New(), "", now))
	require.NoError(t, repo.Save(ctx, doc))
	require.NoError(t, repo.Save(ctx, doc))

	loaded, err := repo.FindByID(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, document.StatusStarted, loaded.CurrentStatus)
	assert.Len(t, loaded.StatusHistory, 2)
	assert.Len(t, loaded.Items, 1)
}

func TestGormDocumentRepository_FindByLinkedDocument(t *testing.T) {
	db := setupDocumentTestDB(t)
	repo := NewGormDocumentRepository(db)
	ctx := context.Background()

	order := newSavedDocument(t, repo, "FVO", 1)
	response := newSavedDocument(t, repo, "FV", 1)
	response.LinkedDocumentID = &order.ID
	require.NoError(t, repo.Save(ctx, response))

	newSavedDocument(t, repo, "FV", 2) // unlinked

	linked, err := repo.FindByLinkedDocument(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, response.ID, linked[0].ID)
}

func TestGormDocumentRepository_FindAllWithFilters(t *testing.T) {
	db := setupDocumentTestDB(t)
	repo := NewGormDocumentRepository(db)
	ctx := context.Background()

	newSavedDocument(t, repo, "PZ", 1)
	newSavedDocument(t, repo, "PZ", 2)
	newSavedDocument(t, repo, "FV", 1)

	filter := shared.DefaultFilter()
	filter.Filters["type_symbol"] = "PZ"

	docs, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.Count(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
