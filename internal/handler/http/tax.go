package http

import (
	"encoding/json"
	"net/http"

	"github.com/zimhr/payroll-backend-go/internal/domain/currency"
	"github.com/zimhr/payroll-backend-go/internal/domain/tax"
	"github.com/zimhr/payroll-backend-go/internal/handler/http/response"
	taxService "github.com/zimhr/payroll-backend-go/internal/service/tax"
)

type TaxHandler interface {
	ReplaceTaxTable(w http.ResponseWriter, r *http.Request)
	GetTaxTable(w http.ResponseWriter, r *http.Request)

	CreateNecGrade(w http.ResponseWriter, r *http.Request)
	ListNecGrades(w http.ResponseWriter, r *http.Request)

	CreateTaxCredit(w http.ResponseWriter, r *http.Request)
	CreateVehicleBenefitBand(w http.ResponseWriter, r *http.Request)
}

type taxHandlerImpl struct {
	taxService *taxService.TaxService
}

func NewTaxHandler(service *taxService.TaxService) TaxHandler {
	return &taxHandlerImpl{taxService: service}
}

// ========== TAX TABLES ==========

func (h *taxHandlerImpl) ReplaceTaxTable(w http.ResponseWriter, r *http.Request) {
	var req tax.ReplaceTaxTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.taxService.ReplaceTaxTable(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tax table replaced", result)
}

func (h *taxHandlerImpl) GetTaxTable(w http.ResponseWriter, r *http.Request) {
	code := currency.Code(r.URL.Query().Get("currency"))
	periodType := tax.PeriodType(r.URL.Query().Get("period_type"))

	result, err := h.taxService.GetTaxTable(r.Context(), code, periodType)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== NEC GRADES ==========

func (h *taxHandlerImpl) CreateNecGrade(w http.ResponseWriter, r *http.Request) {
	var req tax.CreateNecGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.taxService.CreateNecGrade(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "NEC grade created", result)
}

func (h *taxHandlerImpl) ListNecGrades(w http.ResponseWriter, r *http.Request) {
	result, err := h.taxService.ListNecGrades(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== TAX CREDITS & VEHICLE BENEFIT ==========

func (h *taxHandlerImpl) CreateTaxCredit(w http.ResponseWriter, r *http.Request) {
	var req tax.CreateTaxCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.taxService.CreateTaxCredit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Tax credit created", result)
}

func (h *taxHandlerImpl) CreateVehicleBenefitBand(w http.ResponseWriter, r *http.Request) {
	var req tax.CreateVehicleBenefitBandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.taxService.CreateVehicleBenefitBand(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Vehicle benefit band created", result)
}
