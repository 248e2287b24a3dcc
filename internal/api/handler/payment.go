// internal/api/handler/payment.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dviniciusbonin/payments-system/internal/service"
	"github.com/dviniciusbonin/payments-system/internal/util"
)

// PaymentHandler handles HTTP requests for payment settlement.
type PaymentHandler struct {
	service service.PaymentService
	logger  *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc service.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{service: svc, logger: logger}
}

// ProcessPaymentRequest is the request body for settling a sale.
type ProcessPaymentRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	CountryCode  string          `json:"country_code"`
	BuyerID      string          `json:"buyer_id"`
	ProductID    string          `json:"product_id"`
	AffiliateID  *string         `json:"affiliate_id,omitempty"`
	CoproducerID *string         `json:"coproducer_id,omitempty"`
}

// ProcessPayment settles a confirmed sale.
// POST /payments
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.BuyerID == "" || req.ProductID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	result, err := h.service.ProcessPayment(r.Context(), service.ProcessPaymentInput{
		Amount:       req.Amount,
		CountryCode:  req.CountryCode,
		BuyerID:      req.BuyerID,
		ProductID:    req.ProductID,
		AffiliateID:  req.AffiliateID,
		CoproducerID: req.CoproducerID,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, result)
}

// GetTransaction retrieves a settled transaction with its splits.
// GET /transactions/{transactionID}
func (h *PaymentHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")
	if transactionID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	transaction, err := h.service.GetTransaction(r.Context(), transactionID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, transaction)
}
