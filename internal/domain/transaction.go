// internal/domain/transaction.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus is the settlement state of a transaction. The settlement
// path only ever produces APPROVED; PENDING and REJECTED exist for future
// asynchronous approval flows.
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusApproved TransactionStatus = "APPROVED"
	TransactionStatusRejected TransactionStatus = "REJECTED"
)

// netAmountTolerance is the maximum absolute drift allowed between
// netAmount and amount-feeAmount.
var netAmountTolerance = decimal.NewFromFloat(0.01)

// TransactionSplit is the concrete payout derived from applying one commission
// row to a transaction's net amount. Splits are created together with their
// transaction and never mutated afterwards.
type TransactionSplit struct {
	ID            string          `db:"id" json:"id"`
	TransactionID string          `db:"transaction_id" json:"transaction_id"`
	UserID        string          `db:"user_id" json:"user_id"`
	Role          UserRole        `db:"role" json:"role"`
	Percentage    decimal.Decimal `db:"percentage" json:"percentage"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// NewTransactionSplit creates a split owned by the given transaction.
func NewTransactionSplit(transactionID, userID string, role UserRole, percentage, amount decimal.Decimal) (*TransactionSplit, error) {
	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return nil, fmt.Errorf("split percentage must be between 0 and 100")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("split amount must be positive")
	}

	return &TransactionSplit{
		ID:            uuid.NewString(),
		TransactionID: transactionID,
		UserID:        userID,
		Role:          role,
		Percentage:    percentage,
		Amount:        amount,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// Transaction records one settled sale: the gross amount paid by the buyer,
// the fee deducted and the net amount distributed through its splits.
type Transaction struct {
	ID          string             `db:"id" json:"id"`
	Amount      decimal.Decimal    `db:"amount" json:"amount"`
	CountryCode string             `db:"country_code" json:"country_code"`
	Status      TransactionStatus  `db:"status" json:"status"`
	FeeAmount   decimal.Decimal    `db:"fee_amount" json:"fee_amount"`
	NetAmount   decimal.Decimal    `db:"net_amount" json:"net_amount"`
	BuyerID     string             `db:"buyer_id" json:"buyer_id"`
	ProductID   string             `db:"product_id" json:"product_id"`
	Splits      []TransactionSplit `db:"-" json:"splits"`
	CreatedAt   time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `db:"updated_at" json:"updated_at"`
}

// NewTransaction creates a Transaction, enforcing the financial invariants:
// positive gross and net amounts, non-negative fee, and
// netAmount == amount - feeAmount within tolerance.
func NewTransaction(
	id string,
	amount decimal.Decimal,
	countryCode string,
	status TransactionStatus,
	feeAmount decimal.Decimal,
	netAmount decimal.Decimal,
	buyerID string,
	productID string,
	splits []TransactionSplit,
) (*Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("transaction amount must be positive")
	}
	if len(countryCode) != 2 {
		return nil, fmt.Errorf("country code must be 2 characters (ISO 3166-1 alpha-2)")
	}
	if feeAmount.IsNegative() {
		return nil, fmt.Errorf("fee amount cannot be negative")
	}
	if netAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("net amount must be positive")
	}
	if netAmount.Sub(amount.Sub(feeAmount)).Abs().GreaterThan(netAmountTolerance) {
		return nil, fmt.Errorf("net amount must equal amount minus fee amount")
	}

	now := time.Now().UTC()
	return &Transaction{
		ID:          id,
		Amount:      amount,
		CountryCode: countryCode,
		Status:      status,
		FeeAmount:   feeAmount,
		NetAmount:   netAmount,
		BuyerID:     buyerID,
		ProductID:   productID,
		Splits:      splits,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsApproved reports whether the transaction is settled.
func (t *Transaction) IsApproved() bool {
	return t.Status == TransactionStatusApproved
}
