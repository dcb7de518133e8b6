package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/handler/http/response"
	currencyService "github.com/zimhr/payroll-backend-go/internal/service/currency"
)

type CurrencyHandler interface {
	CreateSplit(w http.ResponseWriter, r *http.Request)
	ListSplits(w http.ResponseWriter, r *http.Request)
	DeactivateSplit(w http.ResponseWriter, r *http.Request)

	CreateRate(w http.ResponseWriter, r *http.Request)
	ListRates(w http.ResponseWriter, r *http.Request)
}

type currencyHandlerImpl struct {
	currencyService *currencyService.CurrencyService
}

func NewCurrencyHandler(service *currencyService.CurrencyService) CurrencyHandler {
	return &currencyHandlerImpl{currencyService: service}
}

// ========== CURRENCY SPLITS ==========

func (h *currencyHandlerImpl) CreateSplit(w http.ResponseWriter, r *http.Request) {
	var req currency.CreateCurrencySplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.CostCenterID = chi.URLParam(r, "costCenterID")

	result, err := h.currencyService.CreateSplit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Currency split created", result)
}

func (h *currencyHandlerImpl) ListSplits(w http.ResponseWriter, r *http.Request) {
	result, err := h.currencyService.ListSplits(r.Context(), chi.URLParam(r, "costCenterID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *currencyHandlerImpl) DeactivateSplit(w http.ResponseWriter, r *http.Request) {
	if err := h.currencyService.DeactivateSplit(r.Context(), chi.URLParam(r, "splitID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Currency split deactivated", nil)
}

// ========== EXCHANGE RATES ==========

func (h *currencyHandlerImpl) CreateRate(w http.ResponseWriter, r *http.Request) {
	var req currency.CreateExchangeRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.currencyService.CreateRate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Exchange rate created", result)
}

func (h *currencyHandlerImpl) ListRates(w http.ResponseWriter, r *http.Request) {
	result, err := h.currencyService.ListRates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
