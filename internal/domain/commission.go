// internal/domain/commission.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Commission is one configured row of a product's commission table: the
// percentage of the net amount owed to a role when the product is sold.
type Commission struct {
	ID         string          `db:"id" json:"id"`
	Role       UserRole        `db:"role" json:"role"`
	Percentage decimal.Decimal `db:"percentage" json:"percentage"`
	ProductID  string          `db:"product_id" json:"product_id"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// NewCommission creates a new Commission row for a product.
func NewCommission(role UserRole, percentage decimal.Decimal, productID string) (*Commission, error) {
	if !ValidUserRole(role) || role == RoleCustomer {
		return nil, fmt.Errorf("role %q cannot receive commissions", role)
	}
	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return nil, fmt.Errorf("commission percentage must be between 0 and 100")
	}
	if productID == "" {
		return nil, fmt.Errorf("product id is required")
	}

	now := time.Now().UTC()
	return &Commission{
		ID:         uuid.NewString(),
		Role:       role,
		Percentage: percentage,
		ProductID:  productID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Amount returns this commission's share of the given net amount.
func (c *Commission) Amount(netAmount decimal.Decimal) decimal.Decimal {
	return netAmount.Mul(c.Percentage).Div(hundred)
}
