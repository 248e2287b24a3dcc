// internal/repository/commission_repo.go
package repository

import (
	"context"

	"github.com/dviniciusbonin/payments-system/internal/domain"
)

// CommissionRepository defines the interface for commission data operations.
type CommissionRepository interface {
	// CreateCommission adds a new commission row using the provided DBExecutor.
	CreateCommission(ctx context.Context, q DBExecutor, commission *domain.Commission) error
	// GetCommissionsByProductID retrieves a product's full commission table.
	// An empty slice means the product has no commission configuration.
	GetCommissionsByProductID(ctx context.Context, q DBExecutor, productID string) ([]domain.Commission, error)
}
