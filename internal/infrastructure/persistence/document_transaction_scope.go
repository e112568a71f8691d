package persistence

import (
	"context"

	"gorm.io/gorm"

	appdoc "github.com/mysticum/wms/internal/application/document"
	"github.com/mysticum/wms/internal/domain/document"
	"github.com/mysticum/wms/internal/domain/inventory"
)

// GormTransactionScope implements the document TransactionScope using GORM
// transactions. Document creation, numbering, fulfillment and posting run
// atomically: either the whole lifecycle step commits or none of it does.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appdoc.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to the repositories scoped
// to the current transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// DocumentRepo returns the document repository scoped to the current transaction.
func (r *gormTransactionalRepositories) DocumentRepo() document.Repository {
	return NewGormDocumentRepository(r.tx)
}

// SequenceRepo returns the sequence repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SequenceRepo() document.SequenceRepository {
	return NewGormSequenceRepository(r.tx)
}

// LotRepo returns the stock lot repository scoped to the current transaction.
func (r *gormTransactionalRepositories) LotRepo() inventory.LotRepository {
	return NewGormLotRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appdoc.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appdoc.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
