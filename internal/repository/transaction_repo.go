// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"github.com/dviniciusbonin/payments-system/internal/domain"
)

// TransactionRepository defines the interface for transaction data operations.
type TransactionRepository interface {
	// CreateTransaction inserts a transaction together with all of its splits
	// using the provided DBExecutor.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionByID retrieves a transaction with its splits,
	// or util.ErrNotFound.
	GetTransactionByID(ctx context.Context, q DBExecutor, id string) (*domain.Transaction, error)
}
