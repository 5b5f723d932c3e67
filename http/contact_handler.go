package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"sparta-mortgage/domain"
	"sparta-mortgage/service"
)

type ContactHandler struct {
	service *service.ContactService
	logger  *slog.Logger
}

func NewContactHandler(service *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{service: service, logger: logger}
}

type contactResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	LeadID    string `json:"leadId"`
	Timestamp string `json:"timestamp"`
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var sub domain.ContactSubmission
	if !decodeJSON(w, r, &sub) {
		return
	}

	lead, err := h.service.Submit(r.Context(), sub)
	if err != nil {
		if errors.Is(err, service.ErrMissingContactFields) {
			writeError(w, http.StatusBadRequest, "Name and email are required", "")
			return
		}
		h.logger.ErrorContext(r.Context(), "contact form submission error", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to submit contact form", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, contactResponse{
		Success:   true,
		Message:   "Contact form submitted successfully",
		LeadID:    lead.ID,
		Timestamp: lead.ReceivedAt.Format(time.RFC3339Nano),
	})
}
