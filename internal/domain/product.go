// internal/domain/product.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product is a sellable digital good owned by a producer.
type Product struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	ProducerID  string    `db:"producer_id" json:"producer_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// NewProduct creates a new Product.
func NewProduct(name string, description *string, producerID string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if strings.TrimSpace(producerID) == "" {
		return nil, fmt.Errorf("producer id is required")
	}

	now := time.Now().UTC()
	return &Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		ProducerID:  producerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
