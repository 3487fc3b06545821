package domain

// NegotiationRequest is the structured input to the full pipeline. The
// situation profile is supplied by the caller, not derived from free text.
type NegotiationRequest struct {
	Profile     SituationProfile `json:"profile"`
	Location    LocationRef      `json:"location"`
	Property    PropertySpec     `json:"property"`
	CurrentRent Money            `json:"currentRent"`
	TargetRent  *Money           `json:"targetRent,omitempty"`
}

// NegotiationResult bundles everything the pipeline produced for one
// request. Serializable as-is for the chat layer.
type NegotiationResult struct {
	Plan        RoadmapPlan         `json:"plan"`
	Leverage    LeverageScore       `json:"leverage"`
	Strategy    NegotiationStrategy `json:"strategy"`
	Success     SuccessEstimate     `json:"success"`
	Market      MarketEstimate      `json:"market"`
	Explanation string              `json:"explanation,omitempty"`
}
