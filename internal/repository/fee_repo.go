// internal/repository/fee_repo.go
package repository

import (
	"context"

	"github.com/dviniciusbonin/payments-system/internal/domain"
)

// FeeRepository defines the interface for fee data operations.
type FeeRepository interface {
	// CreateFee adds a new fee using the provided DBExecutor.
	CreateFee(ctx context.Context, q DBExecutor, fee *domain.Fee) error
	// GetFeeByCountryCode retrieves the fee for an exact country code,
	// or util.ErrNotFound.
	GetFeeByCountryCode(ctx context.Context, q DBExecutor, countryCode string) (*domain.Fee, error)
	// GetDefaultFee retrieves the single system-wide default fee,
	// or util.ErrNotFound.
	GetDefaultFee(ctx context.Context, q DBExecutor) (*domain.Fee, error)
	// ListFees retrieves all configured fees.
	ListFees(ctx context.Context, q DBExecutor) ([]domain.Fee, error)
}
