// internal/service/payment_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dviniciusbonin/payments-system/internal/domain"
	"github.com/dviniciusbonin/payments-system/internal/repository"
	"github.com/dviniciusbonin/payments-system/internal/util"
	"github.com/dviniciusbonin/payments-system/pkg/db"
)

// ProcessPaymentInput is the settlement request for one confirmed sale.
// Amount is the gross amount already received from the buyer.
type ProcessPaymentInput struct {
	Amount       decimal.Decimal
	CountryCode  string
	BuyerID      string
	ProductID    string
	AffiliateID  *string
	CoproducerID *string
}

// SplitResult is one payout line of a settlement result.
type SplitResult struct {
	UserID     string          `json:"user_id"`
	Role       domain.UserRole `json:"role"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// ProcessPaymentOutput is the settlement result returned to the caller.
type ProcessPaymentOutput struct {
	TransactionID string                   `json:"transaction_id"`
	Amount        decimal.Decimal          `json:"amount"`
	FeeAmount     decimal.Decimal          `json:"fee_amount"`
	NetAmount     decimal.Decimal          `json:"net_amount"`
	Status        domain.TransactionStatus `json:"status"`
	Splits        []SplitResult            `json:"splits"`
}

// PaymentService settles confirmed sales: it resolves the applicable fee,
// validates the product's commission table, resolves participants, computes
// the splits and persists the transaction, its splits and the credited
// balances as one atomic unit.
type PaymentService interface {
	ProcessPayment(ctx context.Context, input ProcessPaymentInput) (*ProcessPaymentOutput, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
}

type paymentService struct {
	dbExecutor      repository.DBExecutor
	txManager       db.TxManager
	userRepo        repository.UserRepository
	productRepo     repository.ProductRepository
	feeRepo         repository.FeeRepository
	commissionRepo  repository.CommissionRepository
	balanceRepo     repository.BalanceRepository
	transactionRepo repository.TransactionRepository
	logger          *slog.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	dbExecutor repository.DBExecutor,
	txManager db.TxManager,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	feeRepo repository.FeeRepository,
	commissionRepo repository.CommissionRepository,
	balanceRepo repository.BalanceRepository,
	transactionRepo repository.TransactionRepository,
	logger *slog.Logger,
) PaymentService {
	return &paymentService{
		dbExecutor:      dbExecutor,
		txManager:       txManager,
		userRepo:        userRepo,
		productRepo:     productRepo,
		feeRepo:         feeRepo,
		commissionRepo:  commissionRepo,
		balanceRepo:     balanceRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// ProcessPayment runs the settlement state machine. Steps before persistence
// are fail-fast and side-effect free; the final step commits the transaction,
// every split and every credited balance together or not at all.
func (s *paymentService) ProcessPayment(ctx context.Context, input ProcessPaymentInput) (*ProcessPaymentOutput, error) {
	grossAmount := input.Amount
	if grossAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", util.ErrInvalidInput)
	}
	if len(input.CountryCode) != 2 {
		return nil, fmt.Errorf("%w: country code must be 2 characters", util.ErrInvalidInput)
	}

	product, err := s.productRepo.GetProductByID(ctx, s.dbExecutor, input.ProductID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrProductNotFound
		}
		return nil, fmt.Errorf("process payment: failed to resolve product: %w", err)
	}

	buyer, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, input.BuyerID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrBuyerNotFound
		}
		return nil, fmt.Errorf("process payment: failed to resolve buyer: %w", err)
	}
	if !buyer.IsActive {
		return nil, util.ErrBuyerNotFound
	}

	fee, err := s.resolveFee(ctx, input.CountryCode)
	if err != nil {
		return nil, err
	}
	feeCalc := CalculateFee(grossAmount, fee)

	commissions, err := s.commissionRepo.GetCommissionsByProductID(ctx, s.dbExecutor, product.ID)
	if err != nil {
		return nil, fmt.Errorf("process payment: failed to load commissions: %w", err)
	}
	if len(commissions) == 0 {
		return nil, util.ErrNoCommissions
	}
	if err := ValidateCommissionPercentages(commissions); err != nil {
		return nil, err
	}

	participants, err := s.resolveParticipants(ctx, commissions, input.AffiliateID, input.CoproducerID)
	if err != nil {
		return nil, err
	}

	splits := DistributeCommissions(feeCalc.NetAmount, commissions, *participants)

	transactionID := uuid.NewString()
	transactionSplits := make([]domain.TransactionSplit, 0, len(splits))
	for _, split := range splits {
		ts, err := domain.NewTransactionSplit(transactionID, split.UserID, split.Role, split.Percentage, split.Amount)
		if err != nil {
			return nil, fmt.Errorf("process payment: invalid split for user %s: %w", split.UserID, err)
		}
		transactionSplits = append(transactionSplits, *ts)
	}

	transaction, err := domain.NewTransaction(
		transactionID,
		grossAmount,
		input.CountryCode,
		domain.TransactionStatusApproved,
		feeCalc.FeeAmount,
		feeCalc.NetAmount,
		buyer.ID,
		product.ID,
		transactionSplits,
	)
	if err != nil {
		return nil, fmt.Errorf("process payment: invalid transaction: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(q db.Executor) error {
		if err := s.transactionRepo.CreateTransaction(ctx, q, transaction); err != nil {
			return err
		}
		for _, split := range transaction.Splits {
			if _, err := s.creditBalance(ctx, q, split.UserID, split.Amount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("settlement commit failed", "transaction_id", transactionID, "error", err)
		return nil, fmt.Errorf("%w: %v", util.ErrPersistence, err)
	}

	s.logger.Info("payment settled",
		"transaction_id", transactionID,
		"product_id", product.ID,
		"buyer_id", buyer.ID,
		"amount", grossAmount,
		"fee_amount", feeCalc.FeeAmount,
		"net_amount", feeCalc.NetAmount,
		"splits", len(transaction.Splits),
	)

	out := &ProcessPaymentOutput{
		TransactionID: transaction.ID,
		Amount:        grossAmount,
		FeeAmount:     feeCalc.FeeAmount,
		NetAmount:     feeCalc.NetAmount,
		Status:        transaction.Status,
		Splits:        make([]SplitResult, 0, len(splits)),
	}
	for _, split := range splits {
		out.Splits = append(out.Splits, SplitResult{
			UserID:     split.UserID,
			Role:       split.Role,
			Percentage: split.Percentage,
			Amount:     split.Amount,
		})
	}
	return out, nil
}

// GetTransaction retrieves a settled transaction with its splits.
func (s *paymentService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransactionByID(ctx, s.dbExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction %s: %w", id, err)
	}
	return transaction, nil
}

// resolveFee looks up the fee for an exact country code and falls back to the
// configured default fee.
func (s *paymentService) resolveFee(ctx context.Context, countryCode string) (*domain.Fee, error) {
	fee, err := s.feeRepo.GetFeeByCountryCode(ctx, s.dbExecutor, countryCode)
	if err == nil {
		return fee, nil
	}
	if !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("process payment: failed to resolve fee: %w", err)
	}

	fee, err = s.feeRepo.GetDefaultFee(ctx, s.dbExecutor)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrFeeNotFound
		}
		return nil, fmt.Errorf("process payment: failed to resolve default fee: %w", err)
	}
	return fee, nil
}

// resolveParticipants determines which user fills each role slot. A role is
// mandatory iff the commission table configures it. Producer and platform are
// resolved by role lookup; exactly one active account may hold each.
func (s *paymentService) resolveParticipants(
	ctx context.Context,
	commissions []domain.Commission,
	affiliateID, coproducerID *string,
) (*Participants, error) {
	var hasAffiliate, hasCoproducer bool
	for _, commission := range commissions {
		switch commission.Role {
		case domain.RoleAffiliate:
			hasAffiliate = true
		case domain.RoleCoproducer:
			hasCoproducer = true
		}
	}

	if hasAffiliate && affiliateID == nil {
		return nil, util.ErrAffiliateRequired
	}
	if hasCoproducer && coproducerID == nil {
		return nil, util.ErrCoproducerRequired
	}

	if affiliateID != nil {
		affiliate, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, *affiliateID)
		if err != nil {
			if util.IsError(err, util.ErrNotFound) {
				return nil, util.ErrAffiliateRoleMismatch
			}
			return nil, fmt.Errorf("process payment: failed to resolve affiliate: %w", err)
		}
		if affiliate.Role != domain.RoleAffiliate {
			return nil, util.ErrAffiliateRoleMismatch
		}
	}

	if coproducerID != nil {
		coproducer, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, *coproducerID)
		if err != nil {
			if util.IsError(err, util.ErrNotFound) {
				return nil, util.ErrCoproducerRoleMismatch
			}
			return nil, fmt.Errorf("process payment: failed to resolve coproducer: %w", err)
		}
		if coproducer.Role != domain.RoleCoproducer {
			return nil, util.ErrCoproducerRoleMismatch
		}
	}

	producerID, err := s.resolveSingletonRole(ctx, domain.RoleProducer, util.ErrProducerNotFound)
	if err != nil {
		return nil, err
	}
	platformID, err := s.resolveSingletonRole(ctx, domain.RolePlatform, util.ErrPlatformNotFound)
	if err != nil {
		return nil, err
	}

	return &Participants{
		ProducerID:   producerID,
		AffiliateID:  affiliateID,
		CoproducerID: coproducerID,
		PlatformID:   platformID,
	}, nil
}

// resolveSingletonRole returns the id of the single active user holding the
// given role. More than one holder is a surfaced error, never a silent
// first-match pick.
func (s *paymentService) resolveSingletonRole(ctx context.Context, role domain.UserRole, notFound error) (string, error) {
	users, err := s.userRepo.GetUsersByRole(ctx, s.dbExecutor, role)
	if err != nil {
		return "", fmt.Errorf("process payment: failed to resolve %s account: %w", role, err)
	}
	if len(users) == 0 {
		return "", notFound
	}
	if len(users) > 1 {
		return "", fmt.Errorf("%w (%s)", util.ErrAmbiguousRoleAccount, role)
	}
	return users[0].ID, nil
}

// creditBalance loads the user's balance under a row lock, creating a zero
// balance on first credit, applies the delta and saves the aggregate. Must run
// inside the settlement's unit of work.
func (s *paymentService) creditBalance(ctx context.Context, q repository.DBExecutor, userID string, amount decimal.Decimal) (*domain.Balance, error) {
	balance, err := s.balanceRepo.GetBalanceByUserIDForUpdate(ctx, q, userID)
	if err != nil {
		if !util.IsError(err, util.ErrNotFound) {
			return nil, err
		}
		balance = domain.NewBalance(userID)
	}

	if err := balance.Add(amount); err != nil {
		return nil, fmt.Errorf("credit balance for user %s: %w", userID, err)
	}

	if err := s.balanceRepo.SaveBalance(ctx, q, balance); err != nil {
		return nil, err
	}
	return balance, nil
}
