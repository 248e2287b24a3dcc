// internal/repository/balance_repo.go
package repository

import (
	"context"

	"github.com/dviniciusbonin/payments-system/internal/domain"
)

// BalanceRepository defines the interface for balance data operations.
type BalanceRepository interface {
	// GetBalanceByUserID retrieves a user's balance, or util.ErrNotFound if the
	// user was never credited.
	GetBalanceByUserID(ctx context.Context, q DBExecutor, userID string) (*domain.Balance, error)
	// GetBalanceByUserIDForUpdate retrieves a user's balance holding a row-level
	// lock for the remainder of the enclosing transaction. Must be called with a
	// transactional DBExecutor; concurrent credits to the same user serialize on
	// this lock.
	GetBalanceByUserIDForUpdate(ctx context.Context, q DBExecutor, userID string) (*domain.Balance, error)
	// SaveBalance inserts or updates a balance using the provided DBExecutor.
	SaveBalance(ctx context.Context, q DBExecutor, balance *domain.Balance) error
}
