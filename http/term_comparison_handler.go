package http

import (
	"errors"
	"log/slog"
	"net/http"

	"sparta-mortgage/domain"
	"sparta-mortgage/service"
)

type TermComparisonHandler struct {
	service *service.TermComparisonService
}

func NewTermComparisonHandler(service *service.TermComparisonService) *TermComparisonHandler {
	return &TermComparisonHandler{service: service}
}

func (h *TermComparisonHandler) CompareTerms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.TermComparisonInput
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.Preference == "" {
		input.Preference = "balanced"
	}

	result, err := h.service.CompareTerms(input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) || errors.Is(err, service.ErrNoEligibleTerm) {
			writeError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		slog.ErrorContext(r.Context(), "comparing terms", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compare terms", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
