// internal/repository/product_repo.go
package repository

import (
	"context"

	"github.com/dviniciusbonin/payments-system/internal/domain"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	// CreateProduct adds a new product using the provided DBExecutor.
	CreateProduct(ctx context.Context, q DBExecutor, product *domain.Product) error
	// GetProductByID retrieves a product by id, or util.ErrNotFound.
	GetProductByID(ctx context.Context, q DBExecutor, id string) (*domain.Product, error)
	// ListProducts retrieves all products.
	ListProducts(ctx context.Context, q DBExecutor) ([]domain.Product, error)
}
