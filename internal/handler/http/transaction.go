package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zimhr/payroll-backend-go/internal/domain/transaction"
	"github.com/zimhr/payroll-backend-go/internal/handler/http/response"
	transactionService "github.com/zimhr/payroll-backend-go/internal/service/transaction"
)

type TransactionHandler interface {
	CreateCode(w http.ResponseWriter, r *http.Request)
	ListCodes(w http.ResponseWriter, r *http.Request)

	CreateDefaultTransaction(w http.ResponseWriter, r *http.Request)
	ListDefaultTransactions(w http.ResponseWriter, r *http.Request)
	DeleteDefaultTransaction(w http.ResponseWriter, r *http.Request)

	CreateCustomTransaction(w http.ResponseWriter, r *http.Request)
	ListCustomTransactions(w http.ResponseWriter, r *http.Request)
	DeleteCustomTransaction(w http.ResponseWriter, r *http.Request)
}

type transactionHandlerImpl struct {
	transactionService *transactionService.TransactionService
}

func NewTransactionHandler(service *transactionService.TransactionService) TransactionHandler {
	return &transactionHandlerImpl{transactionService: service}
}

// ========== TRANSACTION CODES ==========

func (h *transactionHandlerImpl) CreateCode(w http.ResponseWriter, r *http.Request) {
	var req transaction.CreateTransactionCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.transactionService.CreateCode(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Transaction code created", result)
}

func (h *transactionHandlerImpl) ListCodes(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	result, err := h.transactionService.ListCodes(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== DEFAULT TRANSACTIONS ==========

func (h *transactionHandlerImpl) CreateDefaultTransaction(w http.ResponseWriter, r *http.Request) {
	var req transaction.CreateDefaultTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.transactionService.CreateDefaultTransaction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Default transaction created", result)
}

func (h *transactionHandlerImpl) ListDefaultTransactions(w http.ResponseWriter, r *http.Request) {
	periodID := r.URL.Query().Get("period_id")
	costCenterID := r.URL.Query().Get("cost_center_id")

	result, err := h.transactionService.ListDefaultTransactions(r.Context(), periodID, costCenterID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *transactionHandlerImpl) DeleteDefaultTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionService.DeleteDefaultTransaction(r.Context(), chi.URLParam(r, "transactionID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Default transaction deleted", nil)
}

// ========== CUSTOM TRANSACTIONS ==========

func (h *transactionHandlerImpl) CreateCustomTransaction(w http.ResponseWriter, r *http.Request) {
	var req transaction.CreateCustomTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.transactionService.CreateCustomTransaction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Custom transaction created", result)
}

func (h *transactionHandlerImpl) ListCustomTransactions(w http.ResponseWriter, r *http.Request) {
	periodID := r.URL.Query().Get("period_id")
	costCenterID := r.URL.Query().Get("cost_center_id")

	result, err := h.transactionService.ListCustomTransactions(r.Context(), periodID, costCenterID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *transactionHandlerImpl) DeleteCustomTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionService.DeleteCustomTransaction(r.Context(), chi.URLParam(r, "transactionID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Custom transaction deleted", nil)
}
