// internal/repository/postgres/commission_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dviniciusbonin/payments-system/internal/domain"
	"github.com/dviniciusbonin/payments-system/internal/repository"
)

// CommissionRepository implements repository.CommissionRepository for PostgreSQL.
type CommissionRepository struct{}

// NewCommissionRepository creates a new CommissionRepository.
func NewCommissionRepository(db *sqlx.DB) repository.CommissionRepository {
	return &CommissionRepository{}
}

// CreateCommission inserts a new commission row using the provided DBExecutor.
// The (role, product_id) pair is unique.
func (r *CommissionRepository) CreateCommission(ctx context.Context, q repository.DBExecutor, commission *domain.Commission) error {
	query := `INSERT INTO commissions (id, role, percentage, product_id, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := q.ExecContext(ctx, query,
		commission.ID, commission.Role, commission.Percentage, commission.ProductID,
		commission.CreatedAt, commission.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create commission: %w", err)
	}
	return nil
}

// GetCommissionsByProductID retrieves a product's full commission table.
func (r *CommissionRepository) GetCommissionsByProductID(ctx context.Context, q repository.DBExecutor, productID string) ([]domain.Commission, error) {
	commissions := []domain.Commission{}
	query := `SELECT id, role, percentage, product_id, created_at, updated_at
              FROM commissions WHERE product_id = $1 ORDER BY created_at`
	if err := q.SelectContext(ctx, &commissions, query, productID); err != nil {
		return nil, fmt.Errorf("failed to get commissions for product %s: %w", productID, err)
	}
	return commissions, nil
}
