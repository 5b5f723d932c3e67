package http

import (
	"errors"
	"log/slog"
	"net/http"

	"sparta-mortgage/domain"
	"sparta-mortgage/service"
)

type ChatHandler struct {
	service *service.ChatService
	logger  *slog.Logger
}

func NewChatHandler(service *service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{service: service, logger: logger}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Reply(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) || errors.Is(err, service.ErrMessageTooLong) {
			writeError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		h.logger.ErrorContext(r.Context(), "chat API error", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to get AI response", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type probeResponse struct {
	Success  bool         `json:"success"`
	Provider string       `json:"provider"`
	Response string       `json:"response"`
	Usage    domain.Usage `json:"usage"`
}

// ProbeProvider checks that one provider's key and endpoint work.
func (h *ChatHandler) ProbeProvider(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	resp, err := h.service.Probe(r.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrUnknownProvider) {
			writeError(w, http.StatusNotFound, "provider not configured", err.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "provider probe failed", "provider", name, "error", err)
		writeError(w, http.StatusInternalServerError, "Provider API test failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, probeResponse{
		Success:  true,
		Provider: resp.Provider,
		Response: resp.Response,
		Usage:    resp.Usage,
	})
}
