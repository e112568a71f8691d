package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mysticum/wms/internal/domain/inventory"
	"github.com/mysticum/wms/internal/domain/shared"
	"github.com/mysticum/wms/internal/infrastructure/persistence/models"
)

// GormLotRepository implements inventory.LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GormLotRepository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// FindByID finds a lot by its ID
func (r *GormLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Lot, error) {
	var model models.LotModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByKey finds the single lot for a (product, cell, expiration, serial)
// identity key. Returns shared.ErrNotFound when no such lot exists.
func (r *GormLotRepository) FindByKey(ctx context.Context, productID, cellID uuid.UUID, expirationDate *time.Time, serial string) (*inventory.Lot, error) {
	query := r.db.WithContext(ctx).
		Where("product_id = ? AND cell_id = ? AND serial = ?", productID, cellID, serial)
	if expirationDate == nil {
		query = query.Where("expiration_date IS NULL")
	} else {
		query = query.Where("expiration_date = ?", *expirationDate)
	}

	var model models.LotModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCell finds all lots stored in a cell
func (r *GormLotRepository) FindByCell(ctx context.Context, cellID uuid.UUID) ([]inventory.Lot, error) {
	var rows []models.LotModel
	if err := r.db.WithContext(ctx).
		Where("cell_id = ?", cellID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainLots(rows), nil
}

// FindByProduct finds all lots of a product across cells
func (r *GormLotRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.Lot, error) {
	query := r.db.WithContext(ctx).Where("product_id = ?", productID)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, LotSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var rows []models.LotModel
	if err := query.Order(orderBy + " " + orderDir).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainLots(rows), nil
}

// FindByCells finds all lots stored in any of the given cells
func (r *GormLotRepository) FindByCells(ctx context.Context, cellIDs []uuid.UUID) ([]inventory.Lot, error) {
	if len(cellIDs) == 0 {
		return []inventory.Lot{}, nil
	}
	var rows []models.LotModel
	if err := r.db.WithContext(ctx).
		Where("cell_id IN ?", cellIDs).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainLots(rows), nil
}

// Save creates or updates a lot
func (r *GormLotRepository) Save(ctx context.Context, lot *inventory.Lot) error {
	model := models.LotModelFromDomain(lot)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a lot, used when a posting drains it to zero
func (r *GormLotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LotModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainLots(rows []models.LotModel) []inventory.Lot {
	lots := make([]inventory.Lot, len(rows))
	for i := range rows {
		lots[i] = *rows[i].ToDomain()
	}
	return lots
}

// Ensure GormLotRepository implements inventory.LotRepository
var _ inventory.LotRepository = (*GormLotRepository)(nil)
