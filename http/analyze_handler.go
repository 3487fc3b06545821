package http

import (
	"encoding/json"
	"net/http"

	"rent-agent/service"
)

// AnalyzeHandler exposes the extraction + trigger path: free text in,
// trigger decision with extracted facts out. The chat layer uses the
// completeness flags to decide between generating a plan and asking a
// follow-up question.
type AnalyzeHandler struct {
	trigger *service.TriggerService
}

func NewAnalyzeHandler(trigger *service.TriggerService) *AnalyzeHandler {
	return &AnalyzeHandler{trigger: trigger}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if input.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	decision := h.trigger.ShouldTrigger(input.Text)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(decision)
}
