// internal/domain/balance.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance is a user's cumulative running total of credited funds.
// It is mutated only through Add and Subtract, which keep it non-negative.
type Balance struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"user_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// NewBalance creates a zero balance for the given user. Balances are created
// lazily on a user's first credit.
func NewBalance(userID string) *Balance {
	now := time.Now().UTC()
	return &Balance{
		ID:        uuid.NewString(),
		UserID:    userID,
		Amount:    decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Add credits the balance by a strictly positive amount.
func (b *Balance) Add(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount to add must be positive")
	}
	b.Amount = b.Amount.Add(amount)
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// Subtract debits the balance by a strictly positive amount. The balance can
// never go below zero.
func (b *Balance) Subtract(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount to subtract must be positive")
	}
	next := b.Amount.Sub(amount)
	if next.IsNegative() {
		return fmt.Errorf("balance cannot be negative")
	}
	b.Amount = next
	b.UpdatedAt = time.Now().UTC()
	return nil
}
