// internal/repository/postgres/balance_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dviniciusbonin/payments-system/internal/domain"
	"github.com/dviniciusbonin/payments-system/internal/repository"
	"github.com/dviniciusbonin/payments-system/internal/util"
)

// BalanceRepository implements repository.BalanceRepository for PostgreSQL.
type BalanceRepository struct{}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(db *sqlx.DB) repository.BalanceRepository {
	return &BalanceRepository{}
}

const balanceColumns = `id, user_id, amount, created_at, updated_at`

// GetBalanceByUserID retrieves a user's balance using the provided DBExecutor.
func (r *BalanceRepository) GetBalanceByUserID(ctx context.Context, q repository.DBExecutor, userID string) (*domain.Balance, error) {
	var balance domain.Balance
	query := `SELECT ` + balanceColumns + ` FROM balances WHERE user_id = $1`
	err := q.GetContext(ctx, &balance, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get balance for user %s: %w", userID, err)
	}
	return &balance, nil
}

// GetBalanceByUserIDForUpdate retrieves a user's balance with a row-level lock
// held until the enclosing transaction commits or rolls back. Concurrent
// credits to the same user serialize on this lock, so a read-modify-write of
// the amount cannot lose an update.
func (r *BalanceRepository) GetBalanceByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID string) (*domain.Balance, error) {
	var balance domain.Balance
	query := `SELECT ` + balanceColumns + ` FROM balances WHERE user_id = $1 FOR UPDATE`
	err := q.GetContext(ctx, &balance, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock balance for user %s: %w", userID, err)
	}
	return &balance, nil
}

// SaveBalance inserts the balance or, when a row for the user already exists,
// updates its amount.
func (r *BalanceRepository) SaveBalance(ctx context.Context, q repository.DBExecutor, balance *domain.Balance) error {
	query := `INSERT INTO balances (id, user_id, amount, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5)
              ON CONFLICT (user_id) DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at`
	_, err := q.ExecContext(ctx, query,
		balance.ID, balance.UserID, balance.Amount, balance.CreatedAt, balance.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save balance for user %s: %w", balance.UserID, err)
	}
	return nil
}
