// internal/service/calculator.go
package service

import (
	"github.com/shopspring/decimal"

	"github.com/dviniciusbonin/payments-system/internal/domain"
	"github.com/dviniciusbonin/payments-system/internal/util"
)

// FeeCalculation is the result of applying a fee to a gross amount.
type FeeCalculation struct {
	FeeAmount decimal.Decimal
	NetAmount decimal.Decimal
}

// Participants maps each settlement role to the concrete user filling it for
// one payment. Affiliate and coproducer are optional; a nil slot means the
// corresponding commission row, if any, produces no split.
type Participants struct {
	ProducerID   string
	AffiliateID  *string
	CoproducerID *string
	PlatformID   string
}

// userIDForRole is the fixed role-to-slot mapping. The role set is closed;
// adding a role means extending this switch.
func (p Participants) userIDForRole(role domain.UserRole) (string, bool) {
	switch role {
	case domain.RoleProducer:
		return p.ProducerID, p.ProducerID != ""
	case domain.RoleAffiliate:
		if p.AffiliateID == nil {
			return "", false
		}
		return *p.AffiliateID, true
	case domain.RoleCoproducer:
		if p.CoproducerID == nil {
			return "", false
		}
		return *p.CoproducerID, true
	case domain.RolePlatform:
		return p.PlatformID, p.PlatformID != ""
	}
	return "", false
}

// CommissionSplit is one computed payout: a role, the user filling it, and
// that user's share of the net amount.
type CommissionSplit struct {
	Role       domain.UserRole
	UserID     string
	Percentage decimal.Decimal
	Amount     decimal.Decimal
}

// CalculateFee computes the fee and net amounts for a gross amount under the
// given fee. No side effects.
func CalculateFee(grossAmount decimal.Decimal, fee *domain.Fee) FeeCalculation {
	return FeeCalculation{
		FeeAmount: fee.FeeAmount(grossAmount),
		NetAmount: fee.NetAmount(grossAmount),
	}
}

// ValidateCommissionPercentages rejects a commission table whose percentages
// sum above 100. An empty table and a table summing below 100 are both valid;
// the undistributed remainder simply stays with no one.
func ValidateCommissionPercentages(commissions []domain.Commission) error {
	total := decimal.Zero
	for _, commission := range commissions {
		total = total.Add(commission.Percentage)
	}
	if total.GreaterThan(decimal.NewFromInt(100)) {
		return util.ErrCommissionsExceed
	}
	return nil
}

// DistributeCommissions computes one split per commission row whose role slot
// is filled. Each amount is netAmount * percentage / 100, computed
// independently per row so rounding error stays bounded per row instead of
// accumulating across the table.
func DistributeCommissions(netAmount decimal.Decimal, commissions []domain.Commission, participants Participants) []CommissionSplit {
	splits := make([]CommissionSplit, 0, len(commissions))
	for _, commission := range commissions {
		userID, ok := participants.userIDForRole(commission.Role)
		if !ok {
			continue
		}
		splits = append(splits, CommissionSplit{
			Role:       commission.Role,
			UserID:     userID,
			Percentage: commission.Percentage,
			Amount:     commission.Amount(netAmount),
		})
	}
	return splits
}
