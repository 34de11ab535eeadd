package billing

import (
	"context"

	"github.com/utilityboard/backend/internal/domain/billing"
	"github.com/utilityboard/backend/internal/domain/metering"
)

// TransactionScope provides transactional access to the ledger
// repositories. The reading and its bill have no single owning aggregate,
// so every operation spanning both runs inside one scope: all repository
// operations within Execute share one database transaction and commit or
// roll back as a unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the ledger repositories
// within a transaction. Both repositories share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// Readings returns the reading repository scoped to the transaction
	Readings() metering.ReadingRepository
	// Bills returns the bill repository scoped to the transaction
	Bills() billing.BillRepository
}

// NoOpTransactionScope is a transaction scope that doesn't use real
// transactions. Useful for tests.
type NoOpTransactionScope struct {
	readingRepo metering.ReadingRepository
	billRepo    billing.BillRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given
// repositories.
func NewNoOpTransactionScope(readingRepo metering.ReadingRepository, billRepo billing.BillRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{readingRepo: readingRepo, billRepo: billRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Readings returns the reading repository.
func (s *NoOpTransactionScope) Readings() metering.ReadingRepository {
	return s.readingRepo
}

// Bills returns the bill repository.
func (s *NoOpTransactionScope) Bills() billing.BillRepository {
	return s.billRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
