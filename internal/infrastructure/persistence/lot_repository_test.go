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

	"github.com/mysticum/wms/internal/domain/inventory"
	"github.com/mysticum/wms/internal/domain/shared"
	"github.com/mysticum/wms/internal/infrastructure/persistence/models"
)

func setupLotTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.LotModel{})
	require.NoError(t, err)

	return db
}

func newTestLot(t *testing.T, productID, cellID uuid.UUID, qty int64, expiration *time.Time, serial string) *inventory.Lot {
	lot, err := inventory.NewLot(productID, cellID, qty, decimal.NewFromInt(10), expiration, serial, uuid.New(), time.Now().UTC())
	require.NoError(t, err)
	return lot
}

func TestGormLotRepository_FindByKey(t *testing.T) {
	db := setupLotTestDB(t)
	repo := NewGormLotRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	cellID := uuid.New()
	expiration := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, newTestLot(t, productID, cellID, 5, nil, "")))
	require.NoError(t, repo.Save(ctx, newTestLot(t, productID, cellID, 7, &expiration, "")))

	t.Run("nil expiration matches only the undated lot", func(t *testing.T) {
		lot, err := repo.FindByKey(ctx, productID, cellID, nil, "")
		require.NoError(t, err)
		assert.Equal(t, int64(5), lot.Quantity)
		assert.Nil(t, lot.ExpirationDate)
	})

	t.Run("dated key matches the dated lot", func(t *testing.T) {
		lot, err := repo.FindByKey(ctx, productID, cellID, &expiration, "")
		require.NoError(t, err)
		assert.Equal(t, int64(7), lot.Quantity)
	})

	t.Run("missing key returns not found", func(t *testing.T) {
		_, err := repo.FindByKey(ctx, productID, uuid.New(), nil, "")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("serial distinguishes lots", func(t *testing.T) {
		_, err := repo.FindByKey(ctx, productID, cellID, nil, "SN-1")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormLotRepository_SaveUpdatesExisting(t *testing.T) {
	db := setupLotTestDB(t)
	repo := NewGormLotRepository(db)
	ctx := context.Background()

	lot := newTestLot(t, uuid.New(), uuid.New(), 5, nil, "")
	require.NoError(t, repo.Save(ctx, lot))

	lot.Quantity = 12
	require.NoError(t, repo.Save(ctx, lot))

	var count int64
	require.NoError(t, db.Model(&models.LotModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	loaded, err := repo.FindByID(ctx, lot.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), loaded.Quantity)
}

func TestGormLotRepository_Delete(t *testing.T) {
	db := setupLotTestDB(t)
	repo := NewGormLotRepository(db)
	ctx := context.Background()

	lot := newTestLot(t, uuid.New(), uuid.New(), 5, nil, "")
	require.NoError(t, repo.Save(ctx, lot))

	require.NoError(t, repo.Delete(ctx, lot.ID))

	_, err := repo.FindByID(ctx, lot.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, lot.ID), shared.ErrNotFound)
}

func TestGormLotRepository_FindByCells(t *testing.T) {
	db := setupLotTestDB(t)
	repo := NewGormLotRepository(db)
	ctx := context.Background()

	cellA := uuid.New()
	cellB := uuid.New()
	cellC := uuid.New()
	require.NoError(t, repo.Save(ctx, newTestLot(t, uuid.New(), cellA, 1, nil, "")))
	require.NoError(t, repo.Save(ctx, newTestLot(t, uuid.New(), cellB, 2, nil, "")))
	require.NoError(t, repo.Save(ctx, newTestLot(t, uuid.New(), cellC, 3, nil, "")))

	lots, err := repo.FindByCells(ctx, []uuid.UUID{cellA, cellB})
	require.NoError(t, err)
	assert.Len(t, lots, 2)

	lots, err = repo.FindByCells(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, lots)
}

func TestGormLotRepository_FindByProduct(t *testing.T) {
	db := setupLotTestDB(t)
	repo := NewGormLotRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	require.NoError(t, repo.Save(ctx, newTestLot(t, productID, uuid.New(), 4, nil, "")))
	require.NoError(t, repo.Save(ctx, newTestLot(t, productID, uuid.New(), 6, nil, "")))
	require.NoError(t, repo.Save(ctx, newTestLot(t, uuid.New(), uuid.New(), 9, nil, "")))

	lots, err := repo.FindByProduct(ctx, productID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, lots, 2)
}
