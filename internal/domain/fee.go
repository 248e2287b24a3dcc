// internal/domain/fee.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeeType distinguishes national from international fee rates.
type FeeType string

const (
	FeeTypeNational      FeeType = "NATIONAL"
	FeeTypeInternational FeeType = "INTERNATIONAL"
)

var (
	hundred = decimal.NewFromInt(100)
)

// Fee is the platform fee applicable to a country. At most one Fee in the
// system may be the default fallback; the store enforces that, not the entity.
type Fee struct {
	ID            string          `db:"id" json:"id"`
	CountryCode   string          `db:"country_code" json:"country_code"`
	FeePercentage decimal.Decimal `db:"fee_percentage" json:"fee_percentage"`
	FeeType       FeeType         `db:"fee_type" json:"fee_type"`
	IsDefault     bool            `db:"is_default" json:"is_default"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// NewFee creates a new Fee, validating the country code and percentage range.
func NewFee(countryCode string, feePercentage decimal.Decimal, feeType FeeType, isDefault bool) (*Fee, error) {
	if len(countryCode) != 2 {
		return nil, fmt.Errorf("country code must be 2 characters (ISO 3166-1 alpha-2)")
	}
	if feePercentage.IsNegative() || feePercentage.GreaterThan(hundred) {
		return nil, fmt.Errorf("fee percentage must be between 0 and 100")
	}
	if feeType != FeeTypeNational && feeType != FeeTypeInternational {
		return nil, fmt.Errorf("unknown fee type %q", feeType)
	}

	now := time.Now().UTC()
	return &Fee{
		ID:            uuid.NewString(),
		CountryCode:   countryCode,
		FeePercentage: feePercentage,
		FeeType:       feeType,
		IsDefault:     isDefault,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// FeeAmount returns the fee levied on the given gross amount.
func (f *Fee) FeeAmount(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(f.FeePercentage).Div(hundred)
}

// NetAmount returns the gross amount minus the fee.
func (f *Fee) NetAmount(gross decimal.Decimal) decimal.Decimal {
	return gross.Sub(f.FeeAmount(gross))
}
