package domain

// FactorBreakdown holds the four leverage factors, each on a 0-10 scale.
type FactorBreakdown struct {
	Market       float64 `json:"market"`
	Financial    float64 `json:"financial"`
	Relationship float64 `json:"relationship"`
	Timing       float64 `json:"timing"`
}

// LeverageScore quantifies negotiating strength. Total is the mean of the
// four factors, so it stays on the same 0-10 scale.
type LeverageScore struct {
	Total   float64         `json:"total"`
	Factors FactorBreakdown `json:"factors"`
}

// NegotiationStrategy is one of a fixed set of approaches.
type NegotiationStrategy string

const (
	StrategyAssertiveCollaborative NegotiationStrategy = "assertive-collaborative"
	StrategyStrategicPatience      NegotiationStrategy = "strategic-patience"
	StrategyRelationshipBuilding   NegotiationStrategy = "relationship-building"
	StrategyCollaborative          NegotiationStrategy = "collaborative-approach"
	StrategyLeverageFocused        NegotiationStrategy = "leverage-focused"
)

// SuccessBreakdown components are independently normalized 0-100 scores.
type SuccessBreakdown struct {
	MarketConditions     float64 `json:"marketConditions"`
	RelationshipStrength float64 `json:"relationshipStrength"`
	TimingOptimality     float64 `json:"timingOptimality"`
	StrategyAlignment    float64 `json:"strategyAlignment"`
}

// Interval is a closed probability band.
type Interval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SuccessEstimate is the quantified outcome estimate. The confidence
// interval widens as market confidence drops.
type SuccessEstimate struct {
	Overall            float64          `json:"overall"`
	Breakdown          SuccessBreakdown `json:"breakdown"`
	ConfidenceInterval Interval         `json:"confidenceInterval"`
}
