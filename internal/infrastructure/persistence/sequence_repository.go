package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mysticum/wms/internal/domain/document"
)

// GormSequenceRepository implements document.SequenceRepository with an
// atomic upsert on the per-scope counter row. The database serializes
// concurrent increments on the row, so numbers within a scope are gapless
// and never duplicated.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// NextNumber reserves and returns the next document number for the
// (type symbol, department, year) scope.
func (r *GormSequenceRepository) NextNumber(ctx context.Context, symbol string, departmentID uuid.UUID, year int) (int, error) {
	var next int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO document_sequences (type_symbol, department_id, year, last_number)
		VALUES (?, ?, ?, 1)
		ON CONFLICT (type_symbol, department_id, year)
		DO UPDATE SET last_number = document_sequences.last_number + 1
		RETURNING last_number`,
		symbol, departmentID, year,
	).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

// Ensure GormSequenceRepository implements document.SequenceRepository
var _ document.SequenceRepository = (*GormSequenceRepository)(nil)
