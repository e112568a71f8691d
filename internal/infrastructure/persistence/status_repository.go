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

// GormStatusRepository implements catalog.StatusRepository using GORM
type GormStatusRepository struct {
	db *gorm.DB
}

// NewGormStatusRepository creates a new GormStatusRepository
func NewGormStatusRepository(db *gorm.DB) *GormStatusRepository {
	return &GormStatusRepository{db: db}
}

// FindByID finds a status catalog entry by its ID
func (r *GormStatusRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Status, error) {
	var model models.StatusModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDocumentType lists the status catalog of a document type
func (r *GormStatusRepository) FindByDocumentType(ctx context.Context, documentTypeID uuid.UUID) ([]catalog.Status, error) {
	var rows []models.StatusModel
	if err := r.db.WithContext(ctx).
		Where("document_type_id = ?", documentTypeID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	statuses := make([]catalog.Status, len(rows))
	for i := range rows {
		statuses[i] = *rows[i].ToDomain()
	}
	return statuses, nil
}

// Save creates or updates a status catalog entry
func (r *GormStatusRepository) Save(ctx context.Context, s *catalog.Status) error {
	model := &models.StatusModel{}
	model.FromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormStatusRepository implements catalog.StatusRepository
var _ catalog.StatusRepository = (*GormStatusRepository)(nil)
