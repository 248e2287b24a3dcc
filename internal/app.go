// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "github.com/dviniciusbonin/payments-system/internal/api"
	"github.com/dviniciusbonin/payments-system/internal/api/handler"
	"github.com/dviniciusbonin/payments-system/internal/config"
	"github.com/dviniciusbonin/payments-system/internal/repository"
	"github.com/dviniciusbonin/payments-system/internal/repository/postgres"
	"github.com/dviniciusbonin/payments-system/internal/service"
	"github.com/dviniciusbonin/payments-system/internal/util"
	"github.com/dviniciusbonin/payments-system/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository        repository.UserRepository
	ProductRepository     repository.ProductRepository
	FeeRepository         repository.FeeRepository
	CommissionRepository  repository.CommissionRepository
	BalanceRepository     repository.BalanceRepository
	TransactionRepository repository.TransactionRepository

	// Services
	PaymentService    service.PaymentService
	ManagementService service.ManagementService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	util.InitLogger()
	app.Logger = util.GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.ProductRepository = postgres.NewProductRepository(app.DB)
	app.FeeRepository = postgres.NewFeeRepository(app.DB)
	app.CommissionRepository = postgres.NewCommissionRepository(app.DB)
	app.BalanceRepository = postgres.NewBalanceRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	txManager := db.NewTxManager(app.DB)
	app.PaymentService = service.NewPaymentService(
		app.DB,
		txManager,
		app.UserRepository,
		app.ProductRepository,
		app.FeeRepository,
		app.CommissionRepository,
		app.BalanceRepository,
		app.TransactionRepository,
		app.Logger,
	)
	app.ManagementService = service.NewManagementService(
		app.DB,
		app.UserRepository,
		app.ProductRepository,
		app.FeeRepository,
		app.CommissionRepository,
		app.BalanceRepository,
	)
	app.Logger.Info("Services initialized.")

	app.HTTPHandler = router.NewRouter(
		handler.NewPaymentHandler(app.PaymentService, app.Logger),
		handler.NewFeeHandler(app.ManagementService, app.Logger),
		handler.NewCommissionHandler(app.ManagementService, app.Logger),
		handler.NewProductHandler(app.ManagementService, app.Logger),
		handler.NewUserHandler(app.ManagementService, app.Logger),
		app.Logger,
	)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
