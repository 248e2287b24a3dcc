// internal/service/payment_service_test.go
package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dviniciusbonin/payments-system/internal/domain"
	"github.com/dviniciusbonin/payments-system/internal/repository"
	"github.com/dviniciusbonin/payments-system/internal/util"
	"github.com/dviniciusbonin/payments-system/pkg/db"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockTxManager is a mock implementation of db.TxManager. On success it runs
// the unit of work against the embedded executor.
type MockTxManager struct {
	mock.Mock
	Executor *MockDBExecutor
}

func (m *MockTxManager) RunInTx(ctx context.Context, fn func(q db.Executor) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Executor)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUsersByRole(ctx context.Context, q repository.DBExecutor, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, q, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, q repository.DBExecutor) ([]domain.User, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockProductRepository is a mock implementation of repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, q repository.DBExecutor, product *domain.Product) error {
	args := m.Called(ctx, q, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Product, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, q repository.DBExecutor) ([]domain.Product, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

// MockFeeRepository is a mock implementation of repository.FeeRepository.
type MockFeeRepository struct {
	mock.Mock
}

func (m *MockFeeRepository) CreateFee(ctx context.Context, q repository.DBExecutor, fee *domain.Fee) error {
	args := m.Called(ctx, q, fee)
	return args.Error(0)
}

func (m *MockFeeRepository) GetFeeByCountryCode(ctx context.Context, q repository.DBExecutor, countryCode string) (*domain.Fee, error) {
	args := m.Called(ctx, q, countryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fee), args.Error(1)
}

func (m *MockFeeRepository) GetDefaultFee(ctx context.Context, q repository.DBExecutor) (*domain.Fee, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fee), args.Error(1)
}

func (m *MockFeeRepository) ListFees(ctx context.Context, q repository.DBExecutor) ([]domain.Fee, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Fee), args.Error(1)
}

// MockCommissionRepository is a mock implementation of repository.CommissionRepository.
type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) CreateCommission(ctx context.Context, q repository.DBExecutor, commission *domain.Commission) error {
	args := m.Called(ctx, q, commission)
	return args.Error(0)
}

func (m *MockCommissionRepository) GetCommissionsByProductID(ctx context.Context, q repository.DBExecutor, productID string) ([]domain.Commission, error) {
	args := m.Called(ctx, q, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Commission), args.Error(1)
}

// MockBalanceRepository is a mock implementation of repository.BalanceRepository.
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) GetBalanceByUserID(ctx context.Context, q repository.DBExecutor, userID string) (*domain.Balance, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) GetBalanceByUserIDForUpdate(ctx context.Context, q repository.DBExecutor, userID string) (*domain.Balance, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) SaveBalance(ctx context.Context, q repository.DBExecutor, balance *domain.Balance) error {
	args := m.Called(ctx, q, balance)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetTransactionByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Transaction, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// paymentMocks bundles every collaborator of the payment service.
type paymentMocks struct {
	executor     *MockDBExecutor
	txManager    *MockTxManager
	users        *MockUserRepository
	products     *MockProductRepository
	fees         *MockFeeRepository
	commissions  *MockCommissionRepository
	balances     *MockBalanceRepository
	transactions *MockTransactionRepository
}

func newPaymentServiceWithMocks() (PaymentService, *paymentMocks) {
	m := &paymentMocks{
		executor:     new(MockDBExecutor),
		users:        new(MockUserRepository),
		products:     new(MockProductRepository),
		fees:         new(MockFeeRepository),
		commissions:  new(MockCommissionRepository),
		balances:     new(MockBalanceRepository),
		transactions: new(MockTransactionRepository),
	}
	m.txManager = &MockTxManager{Executor: m.executor}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewPaymentService(
		m.executor,
		m.txManager,
		m.users,
		m.products,
		m.fees,
		m.commissions,
		m.balances,
		m.transactions,
		logger,
	)
	return svc, m
}

// Test fixtures.

func testUser(id string, role domain.UserRole) *domain.User {
	return &domain.User{ID: id, Name: "Test " + id, Email: id + "@example.com", Role: role, IsActive: true}
}

func testProduct(id, producerID string) *domain.Product {
	return &domain.Product{ID: id, Name: "Web Course", ProducerID: producerID}
}

func testFee(countryCode string, percentage float64, feeType domain.FeeType, isDefault bool) *domain.Fee {
	return &domain.Fee{
		ID:            "fee-" + countryCode,
		CountryCode:   countryCode,
		FeePercentage: decimal.NewFromFloat(percentage),
		FeeType:       feeType,
		IsDefault:     isDefault,
	}
}

func testCommission(role domain.UserRole, percentage float64, productID string) domain.Commission {
	return domain.Commission{
		ID:         "commission-" + string(role),
		Role:       role,
		Percentage: decimal.NewFromFloat(percentage),
		ProductID:  productID,
	}
}

func TestProcessPayment(t *testing.T) {
	ctx := context.Background()

	productID := "product-1"
	buyerID := "buyer-1"
	producerID := "producer-1"
	affiliateID := "affiliate-1"
	coproducerID := "coproducer-1"
	platformID := "platform-1"

	t.Run("FullSettlementWithAllParticipants", func(t *testing.T) {
		svc, m := newPaymentServiceWithMocks()

		m.products.On("GetProductByID", ctx, mock.Anything, productID).Return(testProduct(productID, producerID), nil).Once()
		m.users.On("GetUserByID", ctx, mock.Anything, buyerID).Return(testUser(buyerID, domain.RoleCustomer), nil).Once()
		m.fees.On("GetFeeByCountryCode", ctx, mock.Anything, "BR").Return(testFee("BR", 4.5, domain.FeeTypeNational, false), nil).Once()
		m.commissions.On("GetCommissionsByProductID", ctx, mock.Anything, productID).Return([]domain.Commission{
			testCommission(domain.RoleProducer, 60, productID),
			testCommission(domain.RoleAffiliate, 20, productID),
			testCommission(domain.RoleCoproducer, 10, productID),
			testCommission(domain.RolePlatform, 10, productID),
		}, nil).Once()
		m.users.On("GetUserByID", ctx, mock.Anything, affiliateID).Return(testUser(affiliateID, domain.RoleAffiliate), nil).Once()
		m.users.On("GetUserByID", ctx, mock.Anything, coproducerID).Return(testUser(coproducerID, domain.RoleCoproducer), nil).Once()
		m.users.On("GetUsersByRole", ctx, mock.Anything, domain.RoleProducer).Return([]domain.User{*testUser(producerID, domain.RoleProducer)}, nil).Once()
		m.users.On("GetUsersByRole", ctx, mock.Anything, domain.RolePlatform).Return([]domain.User{*testUser(platformID, domain.RolePlatform)}, nil).Once()

		m.txManager.On("RunInTx", ctx).Return(nil).Once()
		m.transactions.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()

		savedBalances := map[string]decimal.Decimal{}
		m.balances.On("GetBalanceByUserIDForUpdate", ctx, mock.Anything, mock.AnythingOfType("string")).Return(nil, util.ErrNotFound).Times(4)
		m.balances.On("SaveBalance", ctx, mock.Anything, mock.AnythingOfType("*domain.Balance")).
			Run(func(args mock.Arguments) {
				balance := args.Get(2).(*domain.Balance)
				savedBalances[balance.UserID] = balance.Amount
			}).Return(nil).Times(4)

		result, err := svc.ProcessPayment(ctx, ProcessPaymentInput{
			Amount:       decimal.NewFromInt(100),
			CountryCode:  "BR",
			BuyerID:      buyerID,
			ProductID:    productID,
			AffiliateID:  &affiliateID,
			CoproducerID: &coproducerID,
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.NotEmpty(t, result.TransactionID)
		assert.True(t, result.Amount.Equal(decimal.NewFromInt(100)))
		assert.True(t, result.FeeAmount.Equal(decimal.NewFromFloat(4.5)))
		assert.True(t, result.NetAmount.Equal(decimal.NewFromFloat(95.5)))
		assert.Equal(t, domain.TransactionStatusApproved, result.Status)
		require.Len(t, result.Splits, 4)

		expected := map[string]decimal.Decimal{
			producerID:   decimal.NewFromFloat(57.3),
			affiliateID:  decimal.NewFromFloat(19.1),
			coproducerID: decimal.NewFromFloat(9.55),
			platformID:   decimal.NewFromFloat(9.55),
		}
		for _, split := range result.Splits {
			want, ok := expected[split.UserID]
			require.True(t, ok, "unexpected split recipient %s", split.UserID)
			assert.True(t, split.Amount.Equal(want), "split for %s: got %s want %s", split.UserID, split.Amount, want)
		}
		for userID, want := range expected {
			got, ok := savedBalances[userID]
			require.True(t, ok, "no balance credited for %s", userID)
			assert.True(t, got.Equal(want), "balance for %s: got %s want %s", userID, got, want)
		}

		mock.AssertExpectationsForObjects(t, m.products, m.users, m.fees, m.commissions, m.balances, m.transactions, m.txManager)
	})

	t.Run("FallsBackToDefaultFee", func(t *testing.T) {
		svc, m := newPaymentServiceWithMocks()

		m.products.On("GetProductByID", ctx, mock.Anything, productID).Return(testProduct(productID, producerID), nil).Once()
		m.users.On("GetUserByID", ctx, mock.Anything, buyerID).Return(testUser(buyerID, domain.RoleCustomer), nil).Once()
		m.fees.On("GetFeeByCountryCode", ctx, mock.Anything, "XX").Return(nil, util.ErrNotFound).Once()
		m.fees.On("GetDefaultFee", ctx, mock.Anything).Return(testFee("ZZ", 6.0, domain.FeeTypeInternational, true), nil).Once()
		m.commissions.On("GetCommissionsByProductID", ctx, mock.Anything, productID).Return([]domain.Commission{
			testCommission(domain.RoleProducer, 60, productID),
			testCommission(domain.RolePlatform, 40, productID),
		}, nil).Once()
		m.users.On("GetUsersByRole", ctx, mock.Anything, domain.RoleProducer).Return([]domain.User{*testUser(producerID, domain.RoleProducer)}, nil).Once()
		m.users.On("GetUsersByRole", ctx, mock.Anything, domain.RolePlatform).Return([]domain.User{*testUser(platformID, domain.RolePlatform)}, nil).Once()

		m.txManager.On("RunInTx", ctx).Return(nil).Once()
		m.transactions.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()
		m.balances.On("GetBalanceByUserIDForUpdate", ctx, mock.Anything, mock.AnythingOfType("string")).Return(nil, util.ErrNotFound).Times(2)
		m.balances.On("SaveBalance", ctx, mock.Anything, mock.AnythingOfType("*domain.Balance")).Return(nil).Times(2)

		result, err := svc.ProcessPayment(ctx, ProcessPaymentInput{
			Amount:      decimal.NewFromInt(100),
			CountryCode: "XX",
			BuyerID:     buyerID,
			ProductID:   productID,
		})

		require.NoError(t, err)
		assert.True(t, result.FeeAmount.Equal(decimal.NewFromFloat(6.0)))
		assert.True(t, result.NetAmount.Equal(decimal.NewFromFloat(94.0)))

		m.fees.AssertNumberOfCalls(t, "GetDefaultFee", 1)
		mock.AssertExpectationsForObjects(t, m.fees, m.txManager, m.transactions, m.balances)
	})

	t.Run("NoFeeAndNoDefaultFails", func(t *testing.T) {
		svc, m := newPaymentServiceWithMocks()

		m.products.On("GetProductByID", ctx, mock.Anything, productID).Return(testProduct(productID, producerID), nil).Once()
		m.users.On("GetUserByID", ctx, mock.Anything, buyerID).Return(testUser(buyerID, domain.RoleCustomer), nil).Once()
		m.fees.On("GetFeeByCountryCode", ctx, mock.Anything, "XX").Return(nil, util.ErrNotFound).Once()
		m.fees.On("GetDefaultFee", ctx, mock.Anything).Return(nil, util.ErrNotFound).Once()

		result, err := svc.ProcessPayment(ctx, ProcessPaymentInput{
			Amount:      decimal.NewFromInt(100),
			CountryCode: "XX",
			BuyerID:     buyerID,
			ProductID:   productID,
		})

		assert.ErrorIs(t, err, util.ErrFeeNotFound)
		assert.ErrorIs(t, err, util.ErrNotFound)
		assert.Nil(t, result)
		m.commissions.AssertNotCalled(t, "GetCommissionsByProductID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AffiliateCommissionWithoutAffiliateID", func(t *testing.T) {
		svc, m := newPaymentServiceWithMocks()

		m.products.On("GetProductByID", ctx, mock.Anything, productID).Return(testProduct(productID, producerID), nil).Once()
		m.users.On("GetUserByID", ctx, mock.Anything, buyerID).Return(testUser(buyerID, domain.RoleCustomer), nil).Once()
		m.fees.On("GetFeeByCountryCode", ctx, mock.Anything, "BR").Return(testFee("BR", 4.5, domain.FeeTypeNational, false), nil).Once()
		m.commissions.On("GetCommissionsByProductID", ctx, mock.Anything, productID).Return([]domain.Commission{
			testCommission(domain.RoleProducer, 60, productID),
			testCommission(domain.RoleAffiliate, 20, productID),
		}, nil).Once()

		result, err := svc.ProcessPayment(ctx, ProcessPaymentInput{
			Amount:      decimal.NewFromInt(100),
			CountryCode: "BR",
			BuyerID:     buyerID,
			ProductID:   productID,
		})

		assert.ErrorIs(t, err, util.ErrAffiliateRequired)
		assert.ErrorIs(t, err, util.ErrBusinessRule)
		assert.Nil(t, result)

		// Fail-fast: nothing may be persisted.
		m.txManager.AssertNotCalled(t, "RunInTx", mock.Anything)
		m.transactions.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
		m.balances.AssertNotCalled(t, "SaveBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AffiliateWithWrongRole", func(t *testing.T) {
		svc, m := newPaymentServiceWithMocks()

		m.products.On("GetProductByID", ctx, mock.Anything, productID).Return(testProduct(productID, producerID), nil).Once()
		m.users.On("GetUserByID", ctx, mock.Anything, buyerID).Return(testUser(buyerID, domain.RoleCustomer), nil).Once()
		m.fees.On("GetFeeByCountryCode", ctx, mock.Anything, "BR").Return(testFee("BR", 4.5, domain.FeeTypeNational, false), nil).Once()
		m.commissions.On("GetCommissionsByProductID", ctx, mock.Anything, productID).Return([]domain.Commission{
			testCommission(domain.RoleProducer, 60, productID),
			testCommission(domain.RoleAffiliate, 20, productID),
		}, nil).Once()
		m.users.On("GetUserByID", ctx, mock.Anything, affiliateID).Return(testUser(affiliateID, domain.RoleCustomer), nil).Once()

		result, err := svc.ProcessPayment(ctx, ProcessPaymentInput{
			Amount:      decimal.NewFromInt(100),
			CountryCode: "BR",
			BuyerID:     buyerID,
			ProductID:   productID,
			AffiliateID: &affiliateID,
		})

		assert.ErrorIs(t, err, util.ErrAffiliateRoleMismatch)
		assert.Nil(t, result)
		m.txManager.AssertNotCalled(t, "RunInTx", mock.Anything)
	})

	t.Run("ExistingBalanceIsCreditedOnTop", func(t *testing.T) {
		svc, m := newPaymentServiceWithMocks()

		m.products.On("GetProductByID", ctx, mock.Anything, productID).Return(testProduct(productID, producerID), nil).Once()
		m.users.On("GetUserByID", ctx, mock.Anything, buyerID).Return(testUser(buyerID, domain.RoleCustomer), nil).Once()
		m.fees.On("GetFeeByCountryCode", ctx, mock.Anything, "BR").Return(testFee("BR", 4.5, domain.FeeTypeNational, false), nil).Once()
		m.commissions.On("GetCommissionsByProductID", ctx, mock.Anything, productID).Return([]domain.Commission{
			testCommission(domain.RoleProducer, 60, productID),
			testCommission(domain.RolePlatform, 40, productID),
		}, nil).Once()
		m.users.On("GetUsersByRole", ctx, mock.Anything, domain.RoleProducer).Return([]domain.User{*testUser(producerID, domain.RoleProducer)}, nil).Once()
		m.users.On("GetUsersByRole", ctx, mock.Anything, domain.RolePlatform).Return([]domain.User{*testUser(platformID, domain.RolePlatform)}, nil).Once()

		existing := domain.NewBalance(producerID)
		require.NoError(t, existing.Add(decimal.NewFromInt(50)))

		m.txManager.On("RunInTx", ctx).Return(nil).Once()
		m.transactions.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()
		m.balances.On("GetBalanceByUserIDForUpdate", ctx, mock.Anything, producerID).Return(existing, nil).Once()
		m.balances.On("GetBalanceByUserIDForUpdate", ctx, mock.Anything, platformID).Return(nil, util.ErrNotFound).Once()

		savedBalances := map[string]decimal.Decimal{}
		m.balances.On("SaveBalance", ctx, mock.Anything, mock.AnythingOfType("*domain.Balance")).
			Run(func(args mock.Arguments) {
				balance := args.Get(2).(*domain.Balance)
				savedBalances[balance.UserID] = balance.Amount
			}).Return(nil).Times(2)

		_, err := svc.ProcessPayment(ctx, ProcessPaymentInput{
			Amount:      decimal.NewFromInt(100),
			CountryCode: "BR",
			BuyerID:     buyerID,
			ProductID:   productID,
		})

		require.NoError(t, err)
		// 50 already held + 57.30 producer split.
		assert.True(t, savedBalances[producerID].Equal(decimal.NewFromFloat(107.3)),
			"producer balance: got %s", savedBalances[producerID])
		assert.True(t, savedBalances[platformID].Equal(decimal.NewFromFloat(38.2)))
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		svc, m := newPaymentServiceWithMocks()

		result, err := svc.ProcessPayment(ctx, ProcessPaymentInput{
			Amount:      decimal.NewFromInt(-10),
			CountryCode: "BR",
			BuyerID:     buyerID,
			ProductID:   productID,
		})

		assert.ErrorIs(t, err, util.ErrInvalidInput)
		assert.Nil(t, result)
		m.products.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InactiveBuyer", func(t *testing.T) {
		svc, m := newPaymentServiceWithMocks()

		inactive := testUser(buyerID, domain.RoleCustomer)
		inactive.IsActive = false

		m.products.On("GetProductByID", ctx, mock.Anything, productID).Return(testProduct(productID, producerID), nil).Once()
		m.users.On("GetUserByID", ctx, mock.Anything, buyerID).Return(inactive, nil).Once()

		_, err := svc.ProcessPayment(ctx, ProcessPaymentInput{
			Amount:      decimal.NewFromInt(100),
			CountryCode: "BR",
			BuyerID:     buyerID,
			ProductID:   productID,
		})

		assert.ErrorIs(t, err, util.ErrBuyerNotFound)
	})

	t.Run("ProductWithoutCommissionTable", func(t *testing.T) {
		svc, m := newPaymentServiceWithMocks()

		m.products.On("GetProductByID", ctx, mock.Anything, productID).Return(testProduct(productID, producerID), nil).Once()
		m.users.On("GetUserByID", ctx, mock.Anything, buyerID).Return(testUser(buyerID, domain.RoleCustomer), nil).Once()
		m.fees.On("GetFeeByCountryCode", ctx, mock.Anything, "BR").Return(testFee("BR", 4.5, domain.FeeTypeNational, false), nil).Once()
		m.commissions.On("GetCommissionsByProductID", ctx, mock.Anything, productID).Return([]domain.Commission{}, nil).Once()

		_, err := svc.ProcessPayment(ctx, ProcessPaymentInput{
			Amount:      decimal.NewFromInt(100),
			CountryCode: "BR",
			BuyerID:     buyerID,
			ProductID:   productID,
		})

		assert.ErrorIs(t, err, util.ErrNoCommissions)
	})

	t.Run("CommissionTableExceedsHundredPercent", func(t *testing.T) {
		svc, m := newPaymentServiceWithMocks()

		m.products.On("GetProductByID", ctx, mock.Anything, productID).Return(testProduct(productID, producerID), nil).Once()
		m.users.On("GetUserByID", ctx, mock.Anything, buyerID).Return(testUser(buyerID, domain.RoleCustomer), nil).Once()
		m.fees.On("GetFeeByCountryCode", ctx, mock.Anything, "BR").Return(testFee("BR", 4.5, domain.FeeTypeNational, false), nil).Once()
		m.commissions.On("GetCommissionsByProductID", ctx, mock.Anything, productID).Return([]domain.Commission{
			testCommission(domain.RoleProducer, 70, productID),
			testCommission(domain.RolePlatform, 40, productID),
		}, nil).Once()

		_, err := svc.ProcessPayment(ctx, ProcessPaymentInput{
			Amount:      decimal.NewFromInt(100),
			CountryCode: "BR",
			BuyerID:     buyerID,
			ProductID:   productID,
		})

		assert.ErrorIs(t, err, util.ErrCommissionsExceed)
		m.txManager.AssertNotCalled(t, "RunInTx", mock.Anything)
	})

	t.Run("MultipleProducerAccountsSurfaced", func(t *testing.T) {
		svc, m := newPaymentServiceWithMocks()

		m.products.On("GetProductByID", ctx, mock.Anything, productID).Return(testProduct(productID, producerID), nil).Once()
		m.users.On("GetUserByID", ctx, mock.Anything, buyerID).Return(testUser(buyerID, domain.RoleCustomer), nil).Once()
		m.fees.On("GetFeeByCountryCode", ctx, mock.Anything, "BR").Return(testFee("BR", 4.5, domain.FeeTypeNational, false), nil).Once()
		m.commissions.On("GetCommissionsByProductID", ctx, mock.Anything, productID).Return([]domain.Commission{
			testCommission(domain.RoleProducer, 60, productID),
		}, nil).Once()
		m.users.On("GetUsersByRole", ctx, mock.Anything, domain.RoleProducer).Return([]domain.User{
			*testUser(producerID, domain.RoleProducer),
			*testUser("producer-2", domain.RoleProducer),
		}, nil).Once()

		_, err := svc.ProcessPayment(ctx, ProcessPaymentInput{
			Amount:      decimal.NewFromInt(100),
			CountryCode: "BR",
			BuyerID:     buyerID,
			ProductID:   productID,
		})

		assert.ErrorIs(t, err, util.ErrAmbiguousRoleAccount)
		m.txManager.AssertNotCalled(t, "RunInTx", mock.Anything)
	})

	t.Run("PersistenceFailureRollsBack", func(t *testing.T) {
		svc, m := newPaymentServiceWithMocks()

		m.products.On("GetProductByID", ctx, mock.Anything, productID).Return(testProduct(productID, producerID), nil).Once()
		m.users.On("GetUserByID", ctx, mock.Anything, buyerID).Return(testUser(buyerID, domain.RoleCustomer), nil).Once()
		m.fees.On("GetFeeByCountryCode", ctx, mock.Anything, "BR").Return(testFee("BR", 4.5, domain.FeeTypeNational, false), nil).Once()
		m.commissions.On("GetCommissionsByProductID", ctx, mock.Anything, productID).Return([]domain.Commission{
			testCommission(domain.RoleProducer, 60, productID),
		}, nil).Once()
		m.users.On("GetUsersByRole", ctx, mock.Anything, domain.RoleProducer).Return([]domain.User{*testUser(producerID, domain.RoleProducer)}, nil).Once()
		m.users.On("GetUsersByRole", ctx, mock.Anything, domain.RolePlatform).Return([]domain.User{*testUser(platformID, domain.RolePlatform)}, nil).Once()

		m.txManager.On("RunInTx", ctx).Return(nil).Once()
		m.transactions.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).
			Return(errors.New("connection reset")).Once()

		result, err := svc.ProcessPayment(ctx, ProcessPaymentInput{
			Amount:      decimal.NewFromInt(100),
			CountryCode: "BR",
			BuyerID:     buyerID,
			ProductID:   productID,
		})

		assert.ErrorIs(t, err, util.ErrPersistence)
		assert.Nil(t, result)
		m.balances.AssertNotCalled(t, "SaveBalance", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		svc, m := newPaymentServiceWithMocks()

		stored := &domain.Transaction{ID: "tx-1", Status: domain.TransactionStatusApproved}
		m.transactions.On("GetTransactionByID", ctx, mock.Anything, "tx-1").Return(stored, nil).Once()

		transaction, err := svc.GetTransaction(ctx, "tx-1")

		require.NoError(t, err)
		assert.Equal(t, stored, transaction)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, m := newPaymentServiceWithMocks()

		m.transactions.On("GetTransactionByID", ctx, mock.Anything, "missing").Return(nil, util.ErrNotFound).Once()

		_, err := svc.GetTransaction(ctx, "missing")

		assert.ErrorIs(t, err, util.ErrNotFound)
	})
}
