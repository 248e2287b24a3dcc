// internal/repository/postgres/fee_pg.go
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

// FeeRepository implements repository.FeeRepository for PostgreSQL.
type FeeRepository struct{}

// NewFeeRepository creates a new FeeRepository.
func NewFeeRepository(db *sqlx.DB) repository.FeeRepository {
	return &FeeRepository{}
}

// CreateFee inserts a new fee using the provided DBExecutor. A partial unique
// index on is_default guarantees at most one default fee system-wide.
func (r *FeeRepository) CreateFee(ctx context.Context, q repository.DBExecutor, fee *domain.Fee) error {
	query := `INSERT INTO fees (id, country_code, fee_percentage, fee_type, is_default, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := q.ExecContext(ctx, query,
		fee.ID, fee.CountryCode, fee.FeePercentage, fee.FeeType, fee.IsDefault, fee.CreatedAt, fee.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create fee: %w", err)
	}
	return nil
}

// GetFeeByCountryCode retrieves the fee for an exact country code.
func (r *FeeRepository) GetFeeByCountryCode(ctx context.Context, q repository.DBExecutor, countryCode string) (*domain.Fee, error) {
	var fee domain.Fee
	query := `SELECT id, country_code, fee_percentage, fee_type, is_default, created_at, updated_at
              FROM fees WHERE country_code = $1`
	err := q.GetContext(ctx, &fee, query, countryCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get fee by country code %s: %w", countryCode, err)
	}
	return &fee, nil
}

// GetDefaultFee retrieves the single system-wide default fee.
func (r *FeeRepository) GetDefaultFee(ctx context.Context, q repository.DBExecutor) (*domain.Fee, error) {
	var fee domain.Fee
	query := `SELECT id, country_code, fee_percentage, fee_type, is_default, created_at, updated_at
              FROM fees WHERE is_default = TRUE`
	err := q.GetContext(ctx, &fee, query)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get default fee: %w", err)
	}
	return &fee, nil
}

// ListFees retrieves all configured fees.
func (r *FeeRepository) ListFees(ctx context.Context, q repository.DBExecutor) ([]domain.Fee, error) {
	fees := []domain.Fee{}
	query := `SELECT id, country_code, fee_percentage, fee_type, is_default, created_at, updated_at
              FROM fees ORDER BY country_code`
	if err := q.SelectContext(ctx, &fees, query); err != nil {
		return nil, fmt.Errorf("failed to list fees: %w", err)
	}
	return fees, nil
}
