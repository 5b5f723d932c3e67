package http

import (
	"errors"
	"net/http"

	"sparta-mortgage/domain"
	"sparta-mortgage/observability"
	"sparta-mortgage/service"
)

type MortgageHandler struct {
	service *service.MortgageService
	metrics *observability.Metrics
}

func NewMortgageHandler(service *service.MortgageService, metrics *observability.Metrics) *MortgageHandler {
	return &MortgageHandler{service: service, metrics: metrics}
}

type calculateRequest struct {
	HomePrice                 float64  `json:"homePrice"`
	DownPaymentPercent        float64  `json:"downPaymentPercent"`
	AnnualInterestRatePercent *float64 `json:"annualInterestRatePercent"`
	TermYears                 int      `json:"termYears"`
	ExtraMonthlyPayment       float64  `json:"extraMonthlyPayment"`
	CreditScore               string   `json:"creditScore"`
}

func (h *MortgageHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req calculateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := domain.LoanInputs{
		HomePrice:           req.HomePrice,
		DownPaymentPercent:  req.DownPaymentPercent,
		TermYears:           req.TermYears,
		ExtraMonthlyPayment: req.ExtraMonthlyPayment,
	}

	switch {
	case req.AnnualInterestRatePercent != nil:
		input.AnnualInterestRatePercent = *req.AnnualInterestRatePercent
	case req.CreditScore != "":
		rate, err := h.service.RateForCreditScore(req.CreditScore)
		if err != nil {
			h.metrics.RecordCalculation(r.Context(), "invalid")
			writeError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		input.AnnualInterestRatePercent = rate
	default:
		h.metrics.RecordCalculation(r.Context(), "invalid")
		writeError(w, http.StatusBadRequest, "annualInterestRatePercent or creditScore is required", "")
		return
	}

	result, err := h.service.Calculate(input)
	if err != nil {
		h.metrics.RecordCalculation(r.Context(), "invalid")
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error(), "")
		return
	}

	outcome := "ok"
	if result.Degenerate {
		outcome = "degenerate"
	}
	h.metrics.RecordCalculation(r.Context(), outcome)

	writeJSON(w, http.StatusOK, result)
}

func (h *MortgageHandler) Options(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Options())
}
