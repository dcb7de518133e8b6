package transaction

import "context"

// TransactionRepository defines data access for transaction codes and the
// recurring/ad-hoc pay lines feeding a period run.
type TransactionRepository interface {
	CreateCode(ctx context.Context, code TransactionCode) (TransactionCode, error)
	GetCodeByID(ctx context.Context, id string) (TransactionCode, error)
	ListCodes(ctx context.Context, activeOnly bool) ([]TransactionCode, error)

	CreateDefaultTransaction(ctx context.Context, txn DefaultTransaction) (DefaultTransaction, error)
	// ListDefaultTransactions returns non-deleted default transactions for the
	// (period, center) pair with their code fields joined.
	ListDefaultTransactions(ctx context.Context, periodID, costCenterID string) ([]DefaultTransaction, error)
	SoftDeleteDefaultTransaction(ctx context.Context, id string) error

	CreateCustomTransaction(ctx context.Context, txn CustomTransaction) (CustomTransaction, error)
	// ListCustomTransactions returns non-deleted custom transactions for the
	// (period, center) pair, employee assignments and tagged codes included.
	ListCustomTransactions(ctx context.Context, periodID, costCenterID string) ([]CustomTransaction, error)
	SoftDeleteCustomTransaction(ctx context.Context, id string) error
}
