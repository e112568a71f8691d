package document

import (
	"context"

	"github.com/mysticum/wms/internal/domain/document"
	"github.com/mysticum/wms/internal/domain/inventory"
)

// TransactionScope provides transactional access to the repositories a
// document lifecycle step touches. Creation, fulfillment propagation,
// posting and count closure each run as one atomic unit: either every
// write lands or none do.
type TransactionScope interface {
	// Execute runs fn inside a database transaction. An error from fn
	// rolls the transaction back; success commits it.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories scoped to the current
// transaction. Document is the aggregate root: line items, status history
// and committee rows are persisted through it. Lots are touched only by
// the posting engine, sequences only by creation.
type TransactionalRepositories interface {
	DocumentRepo() document.Repository
	SequenceRepo() document.SequenceRepository
	LotRepo() inventory.LotRepository
}

// NoOpTransactionScope runs functions without a real transaction. Used in
// tests, where the fakes have no transactional behavior to coordinate.
type NoOpTransactionScope struct {
	documentRepo document.Repository
	sequenceRepo document.SequenceRepository
	lotRepo      inventory.LotRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given
// repositories.
func NewNoOpTransactionScope(
	documentRepo document.Repository,
	sequenceRepo document.SequenceRepository,
	lotRepo inventory.LotRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		documentRepo: documentRepo,
		sequenceRepo: sequenceRepo,
		lotRepo:      lotRepo,
	}
}

// Execute runs the function directly.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// DocumentRepo returns the document repository.
func (s *NoOpTransactionScope) DocumentRepo() document.Repository {
	return s.documentRepo
}

// SequenceRepo returns the sequence repository.
func (s *NoOpTransactionScope) SequenceRepo() document.SequenceRepository {
	return s.sequenceRepo
}

// LotRepo returns the lot repository.
func (s *NoOpTransactionScope) LotRepo() inventory.LotRepository {
	return s.lotRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
