// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dviniciusbonin/payments-system/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	paymentHandler *handler.PaymentHandler,
	feeHandler *handler.FeeHandler,
	commissionHandler *handler.CommissionHandler,
	productHandler *handler.ProductHandler,
	userHandler *handler.UserHandler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Settlement
	r.Post("/payments", paymentHandler.ProcessPayment)
	r.Get("/transactions/{transactionID}", paymentHandler.GetTransaction)

	// Configuration surfaces
	r.Route("/fees", func(r chi.Router) {
		r.Post("/", feeHandler.CreateFee)
		r.Get("/", feeHandler.ListFees)
	})
	r.Route("/commissions", func(r chi.Router) {
		r.Post("/", commissionHandler.CreateCommission)
		r.Get("/", commissionHandler.GetCommissions)
	})
	r.Route("/products", func(r chi.Router) {
		r.Post("/", productHandler.CreateProduct)
		r.Get("/", productHandler.ListProducts)
		r.Get("/{productID}", productHandler.GetProduct)
	})
	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.CreateUser)
		r.Get("/", userHandler.ListUsers)
		r.Get("/{userID}", userHandler.GetUser)
		r.Get("/{userID}/balance", userHandler.GetBalance)
	})

	return r
}
