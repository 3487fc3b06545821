package http

import (
	"encoding/json"
	"net/http"

	"rent-agent/domain"
	"rent-agent/service"
)

// MarketHandler exposes the reconciler on its own, for the UI's market
// summary card. A zero-data sentinel is still a 200: "no data" is an
// answer, not an error.
type MarketHandler struct {
	service *service.MarketService
}

func NewMarketHandler(service *service.MarketService) *MarketHandler {
	return &MarketHandler{service: service}
}

type marketRequest struct {
	Location domain.LocationRef  `json:"location"`
	Property domain.PropertySpec `json:"property"`
}

func (h *MarketHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input marketRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if input.Location.City == "" {
		http.Error(w, "location city is required", http.StatusBadRequest)
		return
	}

	estimate := h.service.Reconcile(r.Context(), input.Location, input.Property)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(estimate)
}
