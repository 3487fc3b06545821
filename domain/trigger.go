package domain

// Completeness reports which facts a message supplied, so the caller can
// choose between generating a plan immediately and asking a follow-up.
type Completeness struct {
	HasRent     bool `json:"hasRent"`
	HasTarget   bool `json:"hasTarget"`
	HasLocation bool `json:"hasLocation"`
}

// TriggerDecision is the outcome of classifying one message. Derived, never
// persisted.
type TriggerDecision struct {
	ShouldTrigger  bool           `json:"shouldTrigger"`
	MatchedSignals []string       `json:"matchedSignals"`
	Completeness   Completeness   `json:"completeness"`
	Facts          ExtractedFacts `json:"facts"`
}
