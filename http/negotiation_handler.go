package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"rent-agent/domain"
	"rent-agent/service"
)

type NegotiationHandler struct {
	service *service.NegotiationService
	logger  *zap.Logger
}

func NewNegotiationHandler(service *service.NegotiationService, logger *zap.Logger) *NegotiationHandler {
	return &NegotiationHandler{service: service, logger: logger}
}

func (h *NegotiationHandler) BuildPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var req domain.NegotiationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode negotiation request", zap.Error(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.BuildPlan(r.Context(), req)
	if err != nil {
		h.logger.Warn("rejected negotiation request", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Encode into a buffer first so a marshalling failure never writes a
	// partial 200 response.
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(result); err != nil {
		h.logger.Error("failed to encode negotiation result", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}
