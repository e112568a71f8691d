package topology

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mysticum/wms/internal/domain/shared"
)

// Resolver walks the cell -> level -> section -> row -> department chain.
// It is a pure read-side lookup: a broken link anywhere in the chain yields
// ErrNotFound, never a panic, since cells may be orphaned during setup.
type Resolver struct {
	repo Repository
}

// NewResolver creates a topology resolver over the given repository.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// DepartmentOfCell resolves the department that owns a storage cell.
func (r *Resolver) DepartmentOfCell(ctx context.Context, cellID uuid.UUID) (*Department, error) {
	cell, err := r.repo.FindCellByID(ctx, cellID)
	if err != nil {
		return nil, err
	}
	if cell.LevelID == nil {
		return nil, shared.NewDomainErrorf("NOT_FOUND", "cell %d is not attached to any level", cell.Number)
	}

	level, err := r.repo.FindLevelByID(ctx, *cell.LevelID)
	if err != nil {
		return nil, chainNotFound(err, cell.Number)
	}
	section, err := r.repo.FindSectionByID(ctx, level.SectionID)
	if err != nil {
		return nil, chainNotFound(err, cell.Number)
	}
	row, err := r.repo.FindRowByID(ctx, section.RowID)
	if err != nil {
		return nil, chainNotFound(err, cell.Number)
	}
	return r.repo.FindDepartmentByID(ctx, row.DepartmentID)
}

// CellsOfDepartment lists every cell owned by a department. An empty result
// is not an error: departments without topology simply have no cells.
func (r *Resolver) CellsOfDepartment(ctx context.Context, departmentID uuid.UUID) ([]Cell, error) {
	if _, err := r.repo.FindDepartmentByID(ctx, departmentID); err != nil {
		return nil, err
	}
	return r.repo.CellsOfDepartment(ctx, departmentID)
}

func chainNotFound(err error, cellNumber int) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainErrorf("NOT_FOUND", "topology chain broken above cell %d", cellNumber)
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) && domainErr.Code == "NOT_FOUND" {
		return shared.NewDomainErrorf("NOT_FOUND", "topology chain broken above cell %d", cellNumber)
	}
	return err
}
