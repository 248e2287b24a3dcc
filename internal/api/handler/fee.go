// internal/api/handler/fee.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/dviniciusbonin/payments-system/internal/api/types"
	"github.com/dviniciusbonin/payments-system/internal/domain"
	"github.com/dviniciusbonin/payments-system/internal/service"
	"github.com/dviniciusbonin/payments-system/internal/util"
)

// FeeHandler handles HTTP requests for fee configuration.
type FeeHandler struct {
	service service.ManagementService
	logger  *slog.Logger
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(svc service.ManagementService, logger *slog.Logger) *FeeHandler {
	return &FeeHandler{service: svc, logger: logger}
}

// CreateFeeRequest is the request body for configuring a country fee.
type CreateFeeRequest struct {
	CountryCode   string          `json:"country_code"`
	FeePercentage decimal.Decimal `json:"fee_percentage"`
	FeeType       domain.FeeType  `json:"fee_type"`
	IsDefault     bool            `json:"is_default"`
}

// CreateFee configures the fee for a country.
// POST /fees
func (h *FeeHandler) CreateFee(w http.ResponseWriter, r *http.Request) {
	var req CreateFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	fee, err := h.service.CreateFee(r.Context(), req.CountryCode, req.FeePercentage, req.FeeType, req.IsDefault)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, fee)
}

// ListFees returns every configured fee.
// GET /fees
func (h *FeeHandler) ListFees(w http.ResponseWriter, r *http.Request) {
	fees, err := h.service.ListFees(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.ListResponse[domain.Fee]{Data: fees})
}
