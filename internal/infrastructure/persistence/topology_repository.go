package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mysticum/wms/internal/domain/shared"
	"github.com/mysticum/wms/internal/domain/topology"
	"github.com/mysticum/wms/internal/infrastructure/persistence/models"
)

// GormTopologyRepository implements topology.Repository using GORM. The
// whole containment chain lives in one repository so lookups that walk it
// stay in one place.
type GormTopologyRepository struct {
	db *gorm.DB
}

// NewGormTopologyRepository creates a new GormTopologyRepository
func NewGormTopologyRepository(db *gorm.DB) *GormTopologyRepository {
	return &GormTopologyRepository{db: db}
}

// FindWarehouseByID finds a warehouse by its ID
func (r *GormTopologyRepository) FindWarehouseByID(ctx context.Context, id uuid.UUID) (*topology.Warehouse, error) {
	var model models.WarehouseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllWarehouses finds warehouses matching the filter
func (r *GormTopologyRepository) FindAllWarehouses(ctx context.Context, filter shared.Filter) ([]topology.Warehouse, error) {
	query := r.db.WithContext(ctx).Model(&models.WarehouseModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", pattern, pattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var rows []models.WarehouseModel
	if err := query.Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	warehouses := make([]topology.Warehouse, len(rows))
	for i := range rows {
		warehouses[i] = *rows[i].ToDomain()
	}
	return warehouses, nil
}

// SaveWarehouse creates or updates a warehouse
func (r *GormTopologyRepository) SaveWarehouse(ctx context.Context, w *topology.Warehouse) error {
	model := &models.WarehouseModel{}
	model.FromDomain(w)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindDepartmentByID finds a department by its ID
func (r *GormTopologyRepository) FindDepartmentByID(ctx context.Context, id uuid.UUID) (*topology.Department, error) {
	var model models.DepartmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindDepartmentsByWarehouse lists all departments of a warehouse
func (r *GormTopologyRepository) FindDepartmentsByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]topology.Department, error) {
	var rows []models.DepartmentModel
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("number ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	departments := make([]topology.Department, len(rows))
	for i := range rows {
		departments[i] = *rows[i].ToDomain()
	}
	return departments, nil
}

// SaveDepartment creates or updates a department
func (r *GormTopologyRepository) SaveDepartment(ctx context.Context, d *topology.Department) error {
	model := &models.DepartmentModel{}
	model.FromDomain(d)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindCellByID finds a cell by its ID
func (r *GormTopologyRepository) FindCellByID(ctx context.Context, id uuid.UUID) (*topology.Cell, error) {
	var model models.CellModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindCellByBarcode finds a cell by its barcode
func (r *GormTopologyRepository) FindCellByBarcode(ctx context.Context, barcode string) (*topology.Cell, error) {
	var model models.CellModel
	if err := r.db.WithContext(ctx).First(&model, "barcode = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveCell creates or updates a cell
func (r *GormTopologyRepository) SaveCell(ctx context.Context, c *topology.Cell) error {
	model := &models.CellModel{}
	model.FromDomain(c)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindLevelByID finds a shelf level by its ID
func (r *GormTopologyRepository) FindLevelByID(ctx context.Context, id uuid.UUID) (*topology.Level, error) {
	var model models.LevelModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindSectionByID finds a row section by its ID
func (r *GormTopologyRepository) FindSectionByID(ctx context.Context, id uuid.UUID) (*topology.Section, error) {
	var model models.SectionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindRowByID finds a storage row by its ID
func (r *GormTopologyRepository) FindRowByID(ctx context.Context, id uuid.UUID) (*topology.Row, error) {
	var model models.RowModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CellsOfDepartment returns every cell reachable from the department through
// the row/section/level chain.
func (r *GormTopologyRepository) CellsOfDepartment(ctx context.Context, departmentID uuid.UUID) ([]topology.Cell, error) {
	var rows []models.CellModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN storage_levels ON storage_levels.id = cells.level_id").
		Joins("JOIN storage_sections ON storage_sections.id = storage_levels.section_id").
		Joins("JOIN storage_rows ON storage_rows.id = storage_sections.row_id").
		Where("storage_rows.department_id = ?", departmentID).
		Order("cells.number ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	cells := make([]topology.Cell, len(rows))
	for i := range rows {
		cells[i] = *rows[i].ToDomain()
	}
	return cells, nil
}

// Ensure GormTopologyRepository implements topology.Repository
var _ topology.Repository = (*GormTopologyRepository)(nil)
