package service

import (
	"fmt"

	"rent-agent/domain"
)

// RoadmapService expands a strategy and leverage profile into an ordered,
// phased action plan. Generate is pure: identical inputs produce
// structurally identical plans, with stable IDs and no randomness.
// Adaptation triggers are attached once at generation time; re-evaluation
// means calling Generate again with fresh inputs.
type RoadmapService struct{}

func NewRoadmapService() *RoadmapService {
	return &RoadmapService{}
}

// Generate builds the plan for one negotiation. Step metrics are filled
// with the caller's real comparable range and target reduction; when the
// market estimate is the zero-data sentinel the same steps degrade to
// qualitative guidance instead of fabricated numbers.
func (s *RoadmapService) Generate(
	strategy domain.NegotiationStrategy,
	leverage domain.LeverageScore,
	profile domain.SituationProfile,
	market domain.MarketEstimate,
	currentRent domain.Money,
	targetRent *domain.Money,
) domain.RoadmapPlan {
	phases := []domain.Phase{
		s.researchPhase(market, currentRent),
		s.evidencePhase(market, currentRent, targetRent),
		s.initialAskPhase(strategy, market, currentRent, targetRent),
		s.counterPhase(strategy, leverage, targetRent, currentRent),
		s.closePhase(targetRent, currentRent),
	}

	return domain.RoadmapPlan{
		Strategy:           strategy,
		Phases:             phases,
		AdaptationTriggers: s.adaptationTriggers(strategy, profile, market),
	}
}

func newPhase(index int, name string, steps ...domain.Step) domain.Phase {
	id := fmt.Sprintf("phase-%d", index)
	for i := range steps {
		steps[i].ID = fmt.Sprintf("%s-step-%d", id, i+1)
		steps[i].Status = domain.StepPending
		for j := range steps[i].ActionItems {
			steps[i].ActionItems[j].ID = fmt.Sprintf("%s-action-%d", steps[i].ID, j+1)
		}
	}
	return domain.Phase{
		ID:     id,
		Name:   name,
		Status: domain.PhasePending,
		Steps:  steps,
	}
}

func actions(descriptions ...string) []domain.ActionItem {
	items := make([]domain.ActionItem, len(descriptions))
	for i, d := range descriptions {
		items[i] = domain.ActionItem{Description: d}
	}
	return items
}

func (s *RoadmapService) researchPhase(market domain.MarketEstimate, currentRent domain.Money) domain.Phase {
	var metrics []string
	var acts []domain.ActionItem
	if market.Available() {
		metrics = []string{
			fmt.Sprintf("You can cite the comparable range %s-%s and the market median %s without notes",
				market.Range.Low, market.Range.High, *market.Median),
			fmt.Sprintf("You know where your %s rent sits relative to that median", currentRent),
		}
		acts = actions(
			fmt.Sprintf("Verify the %s-%s comparable range against two or three live listings",
				market.Range.Low, market.Range.High),
			"Note how long comparable units have been sitting on the market",
		)
	} else {
		metrics = []string{
			"You have collected at least three comparable listings for similar units yourself",
			"You can describe how your rent compares to what similar units ask",
		}
		acts = actions(
			"Search listing sites for units matching yours and record their asking rents",
			"Ask neighbors in similar units what they pay, if the relationship allows it",
		)
	}

	return newPhase(1, "Research the market",
		domain.Step{
			Title:          "Map where your rent sits in the local market",
			Difficulty:     domain.DifficultyEasy,
			ActionItems:    acts,
			SuccessMetrics: metrics,
		},
	)
}

func (s *RoadmapService) evidencePhase(market domain.MarketEstimate, currentRent domain.Money, targetRent *domain.Money) domain.Phase {
	metrics := []string{"Your evidence file holds at least three comparables with dates and sources"}
	if targetRent != nil {
		reduction := currentRent - *targetRent
		metrics = append(metrics, fmt.Sprintf(
			"Your ask of %s (a %s reduction from %s) is written down next to the comparables that justify it",
			*targetRent, reduction, currentRent))
	} else if market.Available() {
		metrics = append(metrics, fmt.Sprintf(
			"You have picked a target near the market median of %s and written it down",
			*market.Median))
	} else {
		metrics = append(metrics, "You have picked a written target grounded in the comparables you collected")
	}

	riskFactors := []string{"Stale or non-comparable listings weaken every later phase"}

	return newPhase(2, "Gather your evidence",
		domain.Step{
			Title:          "Assemble the evidence file",
			Difficulty:     domain.DifficultyEasy,
			ActionItems:    actions(
				"Screenshot or save each comparable listing with its date",
				"List your record as a tenant: payment history, length of stay, condition of the unit",
			),
			SuccessMetrics: metrics,
			RiskFactors:    riskFactors,
		},
		domain.Step{
			Title:       "Decide your walk-away point",
			Difficulty:  domain.DifficultyModerate,
			ActionItems: actions(
				"Write down the rent above which you will start looking elsewhere",
				"Check what moving would actually cost you",
			),
			SuccessMetrics: []string{"You can state your walk-away number and what happens if the landlord refuses"},
		},
	)
}

func (s *RoadmapService) initialAskPhase(
	strategy domain.NegotiationStrategy,
	market domain.MarketEstimate,
	currentRent domain.Money,
	targetRent *domain.Money,
) domain.Phase {
	var title string
	var difficulty domain.Difficulty
	var acts []domain.ActionItem

	switch strategy {
	case domain.StrategyLeverageFocused:
		title = "Present your position from strength"
		difficulty = domain.DifficultyModerate
		acts = actions(
			"Open with the market evidence and your alternatives, stated plainly",
			"Name your target number in the first conversation",
		)
	case domain.StrategyRelationshipBuilding:
		title = "Raise the topic inside the relationship"
		difficulty = domain.DifficultyEasy
		acts = actions(
			"Start from your history as a reliable tenant, not from the numbers",
			"Frame the ask as keeping a good tenancy working for both sides",
		)
	case domain.StrategyStrategicPatience:
		title = "Open the conversation early, settle nothing yet"
		difficulty = domain.DifficultyEasy
		acts = actions(
			"Signal interest in renewing while noting rent is a concern",
			"Hold your number back until the renewal window forces a decision",
		)
	default:
		title = "Make the ask as a shared problem"
		difficulty = domain.DifficultyModerate
		acts = actions(
			"Present the market evidence as context, not as an ultimatum",
			"Invite the landlord to respond with what works for them",
		)
	}

	metrics := []string{"The landlord has heard a specific, evidence-backed ask"}
	if targetRent != nil {
		metrics[0] = fmt.Sprintf("The landlord has heard your ask of %s, backed by comparables", *targetRent)
	}
	if market.Available() {
		metrics = append(metrics, fmt.Sprintf(
			"You referenced the %s-%s comparable range during the conversation",
			market.Range.Low, market.Range.High))
	}

	return newPhase(3, "Make the initial ask",
		domain.Step{
			Title:          title,
			Difficulty:     difficulty,
			ActionItems:    acts,
			SuccessMetrics: metrics,
			RiskFactors:    []string{"Opening with an apology or a hedge invites an immediate no"},
		},
	)
}

func (s *RoadmapService) counterPhase(
	strategy domain.NegotiationStrategy,
	leverage domain.LeverageScore,
	targetRent *domain.Money,
	currentRent domain.Money,
) domain.Phase {
	concession := "Decide in advance the smallest improvement you would still accept"
	if targetRent != nil {
		midpoint := (*targetRent + currentRent) / 2
		concession = fmt.Sprintf(
			"Decide in advance whether a counter near %s is acceptable before you hear one", midpoint)
	}

	riskFactors := []string{"Accepting the first counter concedes the rest of the gap"}
	if leverage.Total < 4 {
		riskFactors = append(riskFactors,
			"With limited leverage, pushing past a firm second no risks the renewal itself")
	}

	return newPhase(4, "Handle the counter",
		domain.Step{
			Title:       "Work the landlord's counter-offer",
			Difficulty:  domain.DifficultyHard,
			ActionItems: actions(
				concession,
				"Trade on non-rent terms if the number will not move: lease length, start date, repairs",
				"Restate your evidence once, then let silence do some of the work",
			),
			SuccessMetrics: []string{
				"Every counter is answered with a reason, not just a number",
				"Non-rent concessions were explored before any impasse",
			},
			RiskFactors: riskFactors,
		},
	)
}

func (s *RoadmapService) closePhase(targetRent *domain.Money, currentRent domain.Money) domain.Phase {
	metric := "The agreed rent and terms exist in writing, signed or confirmed by email"
	if targetRent != nil {
		metric = fmt.Sprintf(
			"An agreed rent at or near %s exists in writing, signed or confirmed by email", *targetRent)
	}

	return newPhase(5, "Close and confirm",
		domain.Step{
			Title:       "Get the agreement in writing",
			Difficulty:  domain.DifficultyEasy,
			ActionItems: actions(
				"Send a same-day email summarizing the agreed rent and any other terms",
				"Confirm when the new rent takes effect and how the lease reflects it",
			),
			SuccessMetrics: []string{metric},
			RiskFactors:    []string{"A verbal agreement without written confirmation tends to drift back"},
		},
	)
}

// adaptationTriggers scans for the conditions most likely to invalidate the
// plan and attaches a suggested adjustment for each.
func (s *RoadmapService) adaptationTriggers(
	strategy domain.NegotiationStrategy,
	profile domain.SituationProfile,
	market domain.MarketEstimate,
) []domain.AdaptationTrigger {
	triggers := []domain.AdaptationTrigger{
		{
			Condition:           "Landlord claims another applicant will pay the current rent",
			SuggestedAdjustment: escalationAdjustment(strategy),
			Impact:              domain.ImpactMajor,
		},
		{
			Condition:           "Landlord does not respond within a week of the initial ask",
			SuggestedAdjustment: "Follow up once in writing, then set a date after which you act on your alternatives",
			Impact:              domain.ImpactMinor,
		},
		{
			Condition:           "Landlord counters well above your target",
			SuggestedAdjustment: "Shift the conversation to non-rent terms before conceding on the number",
			Impact:              domain.ImpactModerate,
		},
	}

	if market.Confidence < 0.4 {
		triggers = append(triggers, domain.AdaptationTrigger{
			Condition:           "Landlord disputes your market numbers with data of their own",
			SuggestedAdjustment: "Your market data is thin; rebuild the evidence file from live listings before pressing the point",
			Impact:              domain.ImpactModerate,
		})
	}
	if profile.Tenant.LandlordRelationship == domain.RelationshipPoor {
		triggers = append(triggers, domain.AdaptationTrigger{
			Condition:           "The conversation turns adversarial",
			SuggestedAdjustment: "Pause and restart in writing with a neutral, facts-only framing",
			Impact:              domain.ImpactModerate,
		})
	}
	if profile.Timing.LeaseStatus == domain.LeaseMidTerm {
		triggers = append(triggers, domain.AdaptationTrigger{
			Condition:           "Landlord refuses to discuss rent before the renewal window",
			SuggestedAdjustment: "Switch to strategic patience: keep gathering evidence and reopen closer to renewal",
			Impact:              domain.ImpactMajor,
		})
	}

	return triggers
}

// escalationAdjustment moves one tier up the assertiveness ladder.
func escalationAdjustment(strategy domain.NegotiationStrategy) string {
	switch strategy {
	case domain.StrategyLeverageFocused:
		return "Hold your position: ask them to put the competing offer in writing and restate your walk-away point"
	case domain.StrategyAssertiveCollaborative:
		return "Escalate to a leverage-focused stance: name your alternatives and your walk-away point"
	default:
		return "Escalate one tier: restate the market evidence firmly and make clear you are prepared to look elsewhere"
	}
}
