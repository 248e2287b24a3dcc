// internal/api/handler/commission.go
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

// CommissionHandler handles HTTP requests for commission tables.
type CommissionHandler struct {
	service service.ManagementService
	logger  *slog.Logger
}

// NewCommissionHandler creates a new CommissionHandler.
func NewCommissionHandler(svc service.ManagementService, logger *slog.Logger) *CommissionHandler {
	return &CommissionHandler{service: svc, logger: logger}
}

// CreateCommissionRequest is the request body for adding a commission row.
type CreateCommissionRequest struct {
	Role       domain.UserRole `json:"role"`
	Percentage decimal.Decimal `json:"percentage"`
	ProductID  string          `json:"product_id"`
}

// CreateCommission adds one row to a product's commission table.
// POST /commissions
func (h *CommissionHandler) CreateCommission(w http.ResponseWriter, r *http.Request) {
	var req CreateCommissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.ProductID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	commission, err := h.service.CreateCommission(r.Context(), req.Role, req.Percentage, req.ProductID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, commission)
}

// GetCommissions returns a product's commission table.
// GET /commissions?product_id=...
func (h *CommissionHandler) GetCommissions(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	commissions, err := h.service.GetCommissionsByProduct(r.Context(), productID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.ListResponse[domain.Commission]{Data: commissions})
}
