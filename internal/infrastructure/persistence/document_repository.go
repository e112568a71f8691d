package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mysticum/wms/internal/domain/document"
	"github.com/mysticum/wms/internal/domain/shared"
	"github.com/mysticum/wms/internal/infrastructure/persistence/models"
)

// GormDocumentRepository implements document.Repository using GORM.
// Documents are loaded with their line items, status history and committee.
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

func (r *GormDocumentRepository) withAssociations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Committee").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}

// FindByID finds a document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var model models.DocumentModel
	if err := r.withAssociations(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a document by its ID holding a FOR UPDATE row
// lock for the duration of the enclosing transaction.
func (r *GormDocumentRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var model models.DocumentModel
	if err := r.withAssociations(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBarcode finds a document by its barcode
func (r *GormDocumentRepository) FindByBarcode(ctx context.Context, barcode string) (*document.Document, error) {
	var model models.DocumentModel
	if err := r.withAssociations(ctx).First(&model, "barcode = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds documents matching the filter
func (r *GormDocumentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]document.Document, error) {
	var rows []models.DocumentModel
	query := r.applyFilter(r.withAssociations(ctx).Model(&models.DocumentModel{}), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	docs := make([]document.Document, len(rows))
	for i := range rows {
		docs[i] = *rows[i].ToDomain()
	}
	return docs, nil
}

// FindByLinkedDocument finds all documents linked to the given order
func (r *GormDocumentRepository) FindByLinkedDocument(ctx context.Context, linkedID uuid.UUID) ([]document.Document, error) {
	var rows []models.DocumentModel
	if err := r.withAssociations(ctx).
		Where("linked_document_id = ?", linkedID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	docs := make([]document.Document, len(rows))
	for i := range rows {
		docs[i] = *rows[i].ToDomain()
	}
	return docs, nil
}

// Count counts documents matching the filter
func (r *GormDocumentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.DocumentModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a document with its associations. Replacing the
// association rows on every save keeps the persisted line items and audit
// trail in step with the aggregate.
func (r *GormDocumentRepository) Save(ctx context.Context, d *document.Document) error {
	model := models.DocumentModelFromDomain(d)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", model.ID).Delete(&models.LineItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) > 0 {
			if err := tx.Create(&model.Items).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("document_id = ?", model.ID).Delete(&models.StatusChangeModel{}).Error; err != nil {
			return err
		}
		if len(model.StatusHistory) > 0 {
			if err := tx.Create(&model.StatusHistory).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("document_id = ?", model.ID).Delete(&models.CommitteeMemberModel{}).Error; err != nil {
			return err
		}
		if len(model.Committee) > 0 {
			if err := tx.Create(&model.Committee).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// applyFilter applies filter options to the query
func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, DocumentSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDocumentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("barcode LIKE ? OR description LIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "type_symbol":
			query = query.Where("type_symbol = ?", value)
		case "current_status":
			query = query.Where("current_status = ?", value)
		case "origin_department_id":
			query = query.Where("origin_department_id = ?", value)
		case "created_by_id":
			query = query.Where("created_by_id = ?", value)
		case "linked_document_id":
			query = query.Where("linked_document_id = ?", value)
		case "posted":
			if value == true {
				query = query.Where("posted_at IS NOT NULL")
			} else {
				query = query.Where("posted_at IS NULL")
			}
		}
	}
	return query
}

// Ensure GormDocumentRepository implements document.Repository
var _ document.Repository = (*GormDocumentRepository)(nil)
