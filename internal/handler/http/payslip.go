package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zimhr/payroll-backend-go/internal/handler/http/response"
	payslipService "github.com/zimhr/payroll-backend-go/internal/service/payslip"
)

type PayslipHandler interface {
	GetPayslip(w http.ResponseWriter, r *http.Request)
	ListByPeriodCenter(w http.ResponseWriter, r *http.Request)
	Distribute(w http.ResponseWriter, r *http.Request)
}

type payslipHandlerImpl struct {
	payslipService *payslipService.PayslipService
}

func NewPayslipHandler(service *payslipService.PayslipService) PayslipHandler {
	return &payslipHandlerImpl{payslipService: service}
}

func (h *payslipHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	result, err := h.payslipService.GetPayslip(r.Context(), chi.URLParam(r, "payslipID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payslipHandlerImpl) ListByPeriodCenter(w http.ResponseWriter, r *http.Request) {
	result, err := h.payslipService.ListByPeriodCenter(r.Context(), chi.URLParam(r, "periodID"), chi.URLParam(r, "costCenterID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payslipHandlerImpl) Distribute(w http.ResponseWriter, r *http.Request) {
	result, err := h.payslipService.Distribute(r.Context(), chi.URLParam(r, "payslipID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip distributed", result)
}
