package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"backoffice/internal/middleware"
	"backoffice/internal/money"
	"backoffice/internal/services"
	"backoffice/internal/validator"

	"github.com/shopspring/decimal"
)

type bulkPaymentItem struct {
	DebtID          string          `json:"debt_id"`
	RelatedEntityID string          `json:"related_entity_id"`
	Amount          decimal.Decimal `json:"amount"`
}

type bulkPaymentRequest struct {
	CounterpartyID  string            `json:"counterparty_id"`
	DebtCurrency    string            `json:"debt_currency"`
	PaymentCurrency string            `json:"payment_currency"`
	ExchangeRate    *decimal.Decimal  `json:"exchange_rate"`
	ReceiptNumber   *string           `json:"receipt_number"`
	PaymentDate     string            `json:"payment_date"`
	Notes           *string           `json:"notes"`
	ScopeID         *string           `json:"scope_id"`
	Items           []bulkPaymentItem `json:"items"`
}

func (h *Handler) BulkPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req bulkPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateCurrency(req.DebtCurrency); err != nil {
		respondError(w, http.StatusBadRequest, "invalid debt_currency")
		return
	}
	if err := validator.ValidateCurrency(req.PaymentCurrency); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payment_currency")
		return
	}
	if err := validator.ValidateDate(req.PaymentDate); err != nil {
		respondError(w, http.StatusBadRequest, "payment_date is required")
		return
	}
	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "payment_date is required")
		return
	}
	if req.ExchangeRate != nil {
		if err := validator.ValidateRate(*req.ExchangeRate); err != nil {
			respondError(w, http.StatusBadRequest, "invalid exchange_rate")
			return
		}
	}

	items := make([]services.BulkPaymentItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, services.BulkPaymentItem{
			DebtID:          item.DebtID,
			RelatedEntityID: item.RelatedEntityID,
			Amount:          item.Amount,
		})
	}
	result, err := h.payments.ProcessBatch(r.Context(), services.BulkPaymentRequest{
		ActorID:         userID,
		CounterpartyID:  req.CounterpartyID,
		DebtCurrency:    money.Currency(req.DebtCurrency),
		PaymentCurrency: money.Currency(req.PaymentCurrency),
		ExchangeRate:    req.ExchangeRate,
		ReceiptNumber:   req.ReceiptNumber,
		PaymentDate:     paymentDate,
		Notes:           req.Notes,
		ScopeID:         req.ScopeID,
		Items:           items,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCounterpartyNotFound):
			respondError(w, http.StatusNotFound, "counterparty_not_found")
		case errors.Is(err, services.ErrMissingCounterparty),
			errors.Is(err, services.ErrEmptyBatch),
			errors.Is(err, services.ErrMissingPaymentDate),
			errors.Is(err, services.ErrInvalidExchangeRate):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "bulk_payment_failed")
		}
		return
	}
	// Per-item failures ride inside "errors"; the response stays 2xx as soon
	// as batch-level validation has passed.
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": result.Results,
		"errors":  result.Errors,
		"summary": result.Summary,
	})
}
