// internal/service/management_service.go
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dviniciusbonin/payments-system/internal/domain"
	"github.com/dviniciusbonin/payments-system/internal/repository"
	"github.com/dviniciusbonin/payments-system/internal/util"
)

// ManagementService covers the plain configuration surfaces around the
// settlement engine: fees, commission tables, products, users and balance
// reads. None of these operations carry settlement logic.
type ManagementService interface {
	CreateFee(ctx context.Context, countryCode string, feePercentage decimal.Decimal, feeType domain.FeeType, isDefault bool) (*domain.Fee, error)
	ListFees(ctx context.Context) ([]domain.Fee, error)

	CreateCommission(ctx context.Context, role domain.UserRole, percentage decimal.Decimal, productID string) (*domain.Commission, error)
	GetCommissionsByProduct(ctx context.Context, productID string) ([]domain.Commission, error)

	CreateProduct(ctx context.Context, name string, description *string, producerID string) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)

	CreateUser(ctx context.Context, name, email string, role domain.UserRole) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)

	GetBalance(ctx context.Context, userID string) (*domain.Balance, error)
}

type managementService struct {
	dbExecutor     repository.DBExecutor
	userRepo       repository.UserRepository
	productRepo    repository.ProductRepository
	feeRepo        repository.FeeRepository
	commissionRepo repository.CommissionRepository
	balanceRepo    repository.BalanceRepository
}

// NewManagementService creates a new ManagementService.
func NewManagementService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	feeRepo repository.FeeRepository,
	commissionRepo repository.CommissionRepository,
	balanceRepo repository.BalanceRepository,
) ManagementService {
	return &managementService{
		dbExecutor:     dbExecutor,
		userRepo:       userRepo,
		productRepo:    productRepo,
		feeRepo:        feeRepo,
		commissionRepo: commissionRepo,
		balanceRepo:    balanceRepo,
	}
}

// CreateFee configures the fee for a country. Only one default fee may exist
// system-wide.
func (s *managementService) CreateFee(ctx context.Context, countryCode string, feePercentage decimal.Decimal, feeType domain.FeeType, isDefault bool) (*domain.Fee, error) {
	fee, err := domain.NewFee(countryCode, feePercentage, feeType, isDefault)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidInput, err)
	}

	if isDefault {
		_, err := s.feeRepo.GetDefaultFee(ctx, s.dbExecutor)
		if err == nil {
			return nil, fmt.Errorf("%w: a default fee is already configured", util.ErrDuplicateEntry)
		}
		if !util.IsError(err, util.ErrNotFound) {
			return nil, fmt.Errorf("create fee: failed to check default fee: %w", err)
		}
	}

	if err := s.feeRepo.CreateFee(ctx, s.dbExecutor, fee); err != nil {
		return nil, fmt.Errorf("create fee: %w", err)
	}
	return fee, nil
}

// ListFees returns every configured fee.
func (s *managementService) ListFees(ctx context.Context) ([]domain.Fee, error) {
	fees, err := s.feeRepo.ListFees(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list fees: %w", err)
	}
	return fees, nil
}

// CreateCommission adds one row to a product's commission table. The table is
// only validated as a whole at settlement time.
func (s *managementService) CreateCommission(ctx context.Context, role domain.UserRole, percentage decimal.Decimal, productID string) (*domain.Commission, error) {
	if _, err := s.productRepo.GetProductByID(ctx, s.dbExecutor, productID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrProductNotFound
		}
		return nil, fmt.Errorf("create commission: failed to resolve product: %w", err)
	}

	commission, err := domain.NewCommission(role, percentage, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidInput, err)
	}

	if err := s.commissionRepo.CreateCommission(ctx, s.dbExecutor, commission); err != nil {
		return nil, fmt.Errorf("create commission: %w", err)
	}
	return commission, nil
}

// GetCommissionsByProduct returns a product's commission table.
func (s *managementService) GetCommissionsByProduct(ctx context.Context, productID string) ([]domain.Commission, error) {
	commissions, err := s.commissionRepo.GetCommissionsByProductID(ctx, s.dbExecutor, productID)
	if err != nil {
		return nil, fmt.Errorf("get commissions: %w", err)
	}
	return commissions, nil
}

// CreateProduct registers a new product owned by the given producer.
func (s *managementService) CreateProduct(ctx context.Context, name string, description *string, producerID string) (*domain.Product, error) {
	producer, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, producerID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("create product: failed to resolve producer: %w", err)
	}
	if producer.Role != domain.RoleProducer {
		return nil, fmt.Errorf("%w: product owner must hold the PRODUCER role", util.ErrBusinessRule)
	}

	product, err := domain.NewProduct(name, description, producerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidInput, err)
	}

	if err := s.productRepo.CreateProduct(ctx, s.dbExecutor, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// GetProduct retrieves a product by id.
func (s *managementService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, s.dbExecutor, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return product, nil
}

// ListProducts returns every product.
func (s *managementService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// CreateUser registers a new active account with the given role.
func (s *managementService) CreateUser(ctx context.Context, name, email string, role domain.UserRole) (*domain.User, error) {
	user, err := domain.NewUser(name, email, role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidInput, err)
	}

	if err := s.userRepo.CreateUser(ctx, s.dbExecutor, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user by id.
func (s *managementService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}

// ListUsers returns every account.
func (s *managementService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetBalance retrieves a user's running balance. A user never credited by a
// settlement has no balance row.
func (s *managementService) GetBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	balance, err := s.balanceRepo.GetBalanceByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrBalanceNotFound
		}
		return nil, fmt.Errorf("get balance for user %s: %w", userID, err)
	}
	return balance, nil
}
