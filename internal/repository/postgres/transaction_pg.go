// internal/repository/postgres/transaction_pg.go
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

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction inserts a transaction and all of its splits using the
// provided DBExecutor. Callers settle through the unit of work, so the
// transaction row and its splits land together or not at all.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (id, amount, country_code, status, fee_amount, net_amount, buyer_id, product_id, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := q.ExecContext(ctx, query,
		transaction.ID,
		transaction.Amount,
		transaction.CountryCode,
		transaction.Status,
		transaction.FeeAmount,
		transaction.NetAmount,
		transaction.BuyerID,
		transaction.ProductID,
		transaction.CreatedAt,
		transaction.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	splitQuery := `INSERT INTO transaction_splits (id, transaction_id, user_id, role, percentage, amount, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, split := range transaction.Splits {
		_, err := q.ExecContext(ctx, splitQuery,
			split.ID, split.TransactionID, split.UserID, split.Role, split.Percentage, split.Amount, split.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create transaction split for user %s: %w", split.UserID, err)
		}
	}
	return nil
}

// GetTransactionByID retrieves a transaction together with its splits.
func (r *TransactionRepository) GetTransactionByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	query := `SELECT id, amount, country_code, status, fee_amount, net_amount, buyer_id, product_id, created_at, updated_at
              FROM transactions WHERE id = $1`
	err := q.GetContext(ctx, &transaction, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by id %s: %w", id, err)
	}

	splits := []domain.TransactionSplit{}
	splitQuery := `SELECT id, transaction_id, user_id, role, percentage, amount, created_at
                   FROM transaction_splits WHERE transaction_id = $1 ORDER BY created_at`
	if err := q.SelectContext(ctx, &splits, splitQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get splits for transaction %s: %w", id, err)
	}
	transaction.Splits = splits

	return &transaction, nil
}
