package domain

// PhaseStatus tracks a phase through the plan lifecycle. The engine emits
// everything pending; the UI layer applies transitions.
type PhaseStatus string

const (
	PhasePending   PhaseStatus = "pending"
	PhaseActive    PhaseStatus = "active"
	PhaseCompleted PhaseStatus = "completed"
)

type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepActive    StepStatus = "active"
	StepCompleted StepStatus = "completed"
	StepSkipped   StepStatus = "skipped"
)

// Difficulty grades how demanding a step is for the tenant.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHard     Difficulty = "hard"
)

type ActionItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type Step struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Difficulty     Difficulty   `json:"difficulty"`
	Status         StepStatus   `json:"status"`
	ActionItems    []ActionItem `json:"actionItems"`
	SuccessMetrics []string     `json:"successMetrics"`
	RiskFactors    []string     `json:"riskFactors,omitempty"`
}

type Phase struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Status PhaseStatus `json:"status"`
	Steps  []Step      `json:"steps"`
}

// Impact grades how much an adaptation trigger should change the plan.
type Impact string

const (
	ImpactMinor    Impact = "minor"
	ImpactModerate Impact = "moderate"
	ImpactMajor    Impact = "major"
)

// AdaptationTrigger names a condition likely to invalidate the current plan
// and the adjustment to make when it occurs. Attached once at generation;
// re-evaluation requires a fresh Generate call.
type AdaptationTrigger struct {
	Condition           string `json:"condition"`
	SuggestedAdjustment string `json:"suggestedAdjustment"`
	Impact              Impact `json:"impact"`
}

// RoadmapPlan is the ordered, phased negotiation plan returned to the
// caller. The engine is stateless per invocation; status transitions are the
// caller's to apply.
type RoadmapPlan struct {
	Strategy           NegotiationStrategy `json:"strategy"`
	Phases             []Phase             `json:"phases"`
	AdaptationTriggers []AdaptationTrigger `json:"adaptationTriggers"`
}
