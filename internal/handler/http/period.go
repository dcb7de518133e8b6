package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zimhr/payroll-backend-go/internal/domain/period"
	"github.com/zimhr/payroll-backend-go/internal/handler/http/response"
	periodService "github.com/zimhr/payroll-backend-go/internal/service/period"
)

type PeriodHandler interface {
	// Payrolls
	CreatePayroll(w http.ResponseWriter, r *http.Request)
	ListPayrolls(w http.ResponseWriter, r *http.Request)

	// Accounting periods
	CreateAccountingPeriod(w http.ResponseWriter, r *http.Request)
	ListAccountingPeriods(w http.ResponseWriter, r *http.Request)

	// Processing
	GetStatus(w http.ResponseWriter, r *http.Request)
	RunPeriod(w http.ResponseWriter, r *http.Request)
	RefreshPeriod(w http.ResponseWriter, r *http.Request)
	ClosePeriod(w http.ResponseWriter, r *http.Request)
}

type periodHandlerImpl struct {
	periodService *periodService.PeriodService
}

func NewPeriodHandler(service *periodService.PeriodService) PeriodHandler {
	return &periodHandlerImpl{periodService: service}
}

// ========== PAYROLLS ==========

func (h *periodHandlerImpl) CreatePayroll(w http.ResponseWriter, r *http.Request) {
	var req period.CreatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.periodService.CreatePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll created", result)
}

func (h *periodHandlerImpl) ListPayrolls(w http.ResponseWriter, r *http.Request) {
	result, err := h.periodService.ListPayrolls(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== ACCOUNTING PERIODS ==========

func (h *periodHandlerImpl) CreateAccountingPeriod(w http.ResponseWriter, r *http.Request) {
	var req period.CreateAccountingPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.PayrollID = chi.URLParam(r, "payrollID")

	result, err := h.periodService.CreateAccountingPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Accounting period created", result)
}

func (h *periodHandlerImpl) ListAccountingPeriods(w http.ResponseWriter, r *http.Request) {
	result, err := h.periodService.ListAccountingPeriods(r.Context(), chi.URLParam(r, "payrollID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== PROCESSING ==========

func (h *periodHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.periodService.GetStatus(r.Context(), chi.URLParam(r, "periodID"), chi.URLParam(r, "costCenterID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *periodHandlerImpl) RunPeriod(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRunRequest(w, r)
	if !ok {
		return
	}

	result, err := h.periodService.RunPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Period run committed", result)
}

func (h *periodHandlerImpl) RefreshPeriod(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRunRequest(w, r)
	if !ok {
		return
	}

	result, err := h.periodService.RefreshPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Period refreshed", result)
}

func (h *periodHandlerImpl) ClosePeriod(w http.ResponseWriter, r *http.Request) {
	req := period.ClosePeriodRequest{
		PeriodID:     chi.URLParam(r, "periodID"),
		CostCenterID: chi.URLParam(r, "costCenterID"),
	}

	result, err := h.periodService.ClosePeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Period closed", result)
}

func decodeRunRequest(w http.ResponseWriter, r *http.Request) (period.RunPeriodRequest, bool) {
	var req period.RunPeriodRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return period.RunPeriodRequest{}, false
		}
	}
	req.PeriodID = chi.URLParam(r, "periodID")
	req.CostCenterID = chi.URLParam(r, "costCenterID")
	if req.CurrencyMode == "" {
		req.CurrencyMode = "DEFAULT"
	}
	return req, true
}
