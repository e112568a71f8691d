package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mysticum/wms/internal/domain/catalog"
	"github.com/mysticum/wms/internal/domain/shared"
	"github.com/mysticum/wms/internal/infrastructure/persistence/models"
)

// GormDocumentTypeRepository implements catalog.DocumentTypeRepository using
// GORM. Behavioral capabilities are resolved from the symbol on every load.
type GormDocumentTypeRepository struct {
	db *gorm.DB
}

// NewGormDocumentTypeRepository creates a new GormDocumentTypeRepository
func NewGormDocumentTypeRepository(db *gorm.DB) *GormDocumentTypeRepository {
	return &GormDocumentTypeRepository{db: db}
}

// FindByID finds a document type by its ID
func (r *GormDocumentTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.DocumentType, error) {
	var model models.DocumentTypeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySymbol finds a document type by its symbol
func (r *GormDocumentTypeRepository) FindBySymbol(ctx context.Context, symbol string) (*catalog.DocumentType, error) {
	var model models.DocumentTypeModel
	if err := r.db.WithContext(ctx).First(&model, "symbol = ?", symbol).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists the whole document type catalog
func (r *GormDocumentTypeRepository) FindAll(ctx context.Context) ([]catalog.DocumentType, error) {
	var rows []models.DocumentTypeModel
	if err := r.db.WithContext(ctx).
		Order("\"group\" ASC, symbol ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	types := make([]catalog.DocumentType, len(rows))
	for i := range rows {
		types[i] = *rows[i].ToDomain()
	}
	return types, nil
}

// Save creates or updates a document type, used by the seeding migration
func (r *GormDocumentTypeRepository) Save(ctx context.Context, t *catalog.DocumentType) error {
	model := &models.DocumentTypeModel{}
	model.FromDomain(t)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormDocumentTypeRepository implements catalog.DocumentTypeRepository
var _ catalog.DocumentTypeRepository = (*GormDocumentTypeRepository)(nil)
