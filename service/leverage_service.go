package service

import (
	"math"

	"rent-agent/config"
	"rent-agent/domain"
)

// roundTo2Decimals rounds a float64 to 2 decimals.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

func clampScore(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// ScoreResult bundles the scorer's three outputs.
type ScoreResult struct {
	Leverage domain.LeverageScore
	Strategy domain.NegotiationStrategy
	Success  domain.SuccessEstimate
}

// LeverageService turns a situation profile and a market estimate into a
// leverage score, a strategy choice, and a success estimate. Pure and
// deterministic over its inputs.
type LeverageService struct {
	successWeights config.SuccessWeights
}

func NewLeverageService(tables config.Tables) *LeverageService {
	return &LeverageService{successWeights: tables.SuccessWeights}
}

// Score computes leverage, selects a strategy, and estimates success for a
// tenant paying currentRent in the given market.
func (s *LeverageService) Score(
	profile domain.SituationProfile,
	currentRent domain.Money,
	market domain.MarketEstimate,
) ScoreResult {
	factors := domain.FactorBreakdown{
		Market:       marketFactor(profile, currentRent, market),
		Financial:    financialFactor(profile),
		Relationship: relationshipFactor(profile),
		Timing:       timingFactor(profile),
	}

	// Mean, not sum: total stays on the 0-10 scale no matter how many
	// sub-signals fire.
	total := roundTo2Decimals(
		(factors.Market + factors.Financial + factors.Relationship + factors.Timing) / 4)

	leverage := domain.LeverageScore{Total: total, Factors: factors}
	strategy := selectStrategy(factors, profile.Tone)
	success := s.successEstimate(profile, currentRent, market, factors, strategy)

	return ScoreResult{
		Leverage: leverage,
		Strategy: strategy,
		Success:  success,
	}
}

// marketFactor: weighted sum of discrete market sub-scores, clamped to 0-10.
// High vacancy and a rent above the local median are the strongest signals.
func marketFactor(profile domain.SituationProfile, currentRent domain.Money, market domain.MarketEstimate) float64 {
	score := 0.0

	switch {
	case profile.Market.VacancyRate > 7:
		score += 4
	case profile.Market.VacancyRate > 5:
		score += 3
	case profile.Market.VacancyRate > 3:
		score += 2
	default:
		score += 1
	}

	switch profile.Market.RentTrend {
	case domain.TrendFalling:
		score += 3
	case domain.TrendFlat:
		score += 2
	case domain.TrendRising:
		score += 0.5
	}

	if market.Available() {
		switch percentile := market.PercentileOf(currentRent); {
		case percentile > 60:
			score += 3
		case percentile > 50:
			score += 2
		default:
			score += 0.5
		}
	} else {
		score += 1.5 // no data: neutral, not zero
	}

	switch profile.Market.LandlordType {
	case domain.LandlordIndividual:
		score += 1.5
	case domain.LandlordSmallCompany:
		score += 1
	}

	return clampScore(score, 10)
}

// financialFactor: the tenant's ability to walk away.
func financialFactor(profile domain.SituationProfile) float64 {
	score := 0.0

	switch {
	case profile.Tenant.AlternativeOptions >= 3:
		score += 4
	case profile.Tenant.AlternativeOptions == 2:
		score += 3
	case profile.Tenant.AlternativeOptions == 1:
		score += 2
	default:
		score += 0.5
	}

	switch profile.Tenant.BudgetFlexibility {
	case domain.LevelHigh:
		score += 3
	case domain.LevelMedium:
		score += 2
	case domain.LevelLow:
		score += 1
	}

	if profile.Timing.CompetingOffers {
		score += 2
	}
	if profile.Tenant.Urgency == domain.LevelLow {
		score += 1
	}

	return clampScore(score, 10)
}

// relationshipFactor: goodwill built with the landlord, amplified when the
// landlord is a person rather than a company.
func relationshipFactor(profile domain.SituationProfile) float64 {
	score := 0.0

	switch profile.Tenant.LandlordRelationship {
	case domain.RelationshipExcellent:
		score += 4
	case domain.RelationshipGood:
		score += 3
	case domain.RelationshipNeutral:
		score += 1.5
	case domain.RelationshipPoor:
		score += 0.5
	}

	switch {
	case profile.Tenant.TenancyMonths >= 36:
		score += 3
	case profile.Tenant.TenancyMonths >= 24:
		score += 2.5
	case profile.Tenant.TenancyMonths >= 12:
		score += 2
	case profile.Tenant.TenancyMonths >= 6:
		score += 1
	default:
		score += 0.5
	}

	switch profile.Market.LandlordType {
	case domain.LandlordIndividual:
		score += 1.5
	case domain.LandlordSmallCompany:
		score += 1
	case domain.LandlordCorporate:
		score += 0.5
	}

	return clampScore(score, 10)
}

// timingFactor: near-term lease expiry with time to spare and low urgency is
// the strongest position.
func timingFactor(profile domain.SituationProfile) float64 {
	score := 0.0

	switch profile.Timing.LeaseStatus {
	case domain.LeaseExpiring:
		score += 4
	case domain.LeaseRenewalOffered:
		score += 3.5
	case domain.LeaseMonthToMonth:
		score += 3
	case domain.LeaseMidTerm:
		score += 1
	}

	switch {
	case profile.Timing.DaysUntilDecision >= 30:
		score += 3
	case profile.Timing.DaysUntilDecision >= 14:
		score += 2
	case profile.Timing.DaysUntilDecision >= 7:
		score += 1
	default:
		score += 0.5
	}

	switch profile.Tenant.Urgency {
	case domain.LevelLow:
		score += 2
	case domain.LevelMedium:
		score += 1
	case domain.LevelHigh:
		score += 0.5
	}

	if profile.Timing.CompetingOffers {
		score += 1
	}

	return clampScore(score, 10)
}

// selectStrategy is a deterministic decision table keyed on the dominant
// leverage factor and the declared tone. Near-ties break toward the strategy
// matching the tone: user buy-in affects execution more than marginal
// leverage differences.
func selectStrategy(f domain.FactorBreakdown, tone domain.Tone) domain.NegotiationStrategy {
	type factor struct {
		name  string
		value float64
	}
	ordered := []factor{
		{"market", f.Market},
		{"financial", f.Financial},
		{"relationship", f.Relationship},
		{"timing", f.Timing},
	}
	top, second, low := ordered[0], ordered[0], ordered[0]
	for _, c := range ordered[1:] {
		if c.value > top.value {
			second = top
			top = c
		} else if c.value > second.value || second.name == top.name {
			second = c
		}
		if c.value < low.value {
			low = c
		}
	}

	// Balanced or unclear signals default to the collaborative approach.
	if top.value-low.value < 1.5 {
		return domain.StrategyCollaborative
	}

	choice := strategyForFactor(top.name, tone)
	if top.value-second.value < 0.75 {
		alternative := strategyForFactor(second.name, tone)
		if strategyMatchesTone(alternative, tone) && !strategyMatchesTone(choice, tone) {
			return alternative
		}
	}
	return choice
}

func strategyForFactor(name string, tone domain.Tone) domain.NegotiationStrategy {
	switch name {
	case "market", "financial":
		switch tone {
		case domain.ToneAssertive:
			return domain.StrategyLeverageFocused
		case domain.ToneDiplomatic:
			return domain.StrategyAssertiveCollaborative
		default:
			return domain.StrategyCollaborative
		}
	case "relationship":
		if tone == domain.ToneAssertive {
			return domain.StrategyAssertiveCollaborative
		}
		return domain.StrategyRelationshipBuilding
	case "timing":
		if tone == domain.ToneAssertive {
			return domain.StrategyAssertiveCollaborative
		}
		return domain.StrategyStrategicPatience
	}
	return domain.StrategyCollaborative
}

func strategyMatchesTone(strategy domain.NegotiationStrategy, tone domain.Tone) bool {
	switch strategy {
	case domain.StrategyLeverageFocused:
		return tone == domain.ToneAssertive
	case domain.StrategyAssertiveCollaborative:
		return tone == domain.ToneAssertive || tone == domain.ToneDiplomatic
	case domain.StrategyRelationshipBuilding:
		return tone == domain.ToneDiplomatic
	case domain.StrategyStrategicPatience:
		return tone == domain.ToneCautious
	case domain.StrategyCollaborative:
		return tone == domain.ToneDiplomatic || tone == domain.ToneCautious
	}
	return false
}

// successEstimate normalizes four independent components to 0-100 and
// weights them into an overall probability. The interval widens as market
// confidence drops: a noisy estimate earns an honest band, not false
// precision.
func (s *LeverageService) successEstimate(
	profile domain.SituationProfile,
	currentRent domain.Money,
	market domain.MarketEstimate,
	factors domain.FactorBreakdown,
	strategy domain.NegotiationStrategy,
) domain.SuccessEstimate {
	marketScore := 50.0
	if market.Available() {
		marketScore = clampScore(25+market.PercentileOf(currentRent)*0.7, 95)
	}

	alignment := 55.0
	if strategyMatchesTone(strategy, profile.Tone) {
		alignment += 15
	}
	if strategy == strategyForFactor(dominantFactor(factors), profile.Tone) {
		alignment += 15
	}

	breakdown := domain.SuccessBreakdown{
		MarketConditions:     roundTo2Decimals(marketScore),
		RelationshipStrength: roundTo2Decimals(factors.Relationship * 10),
		TimingOptimality:     roundTo2Decimals(factors.Timing * 10),
		StrategyAlignment:    alignment,
	}

	overall := roundTo2Decimals(
		s.successWeights.Market*breakdown.MarketConditions +
			s.successWeights.Relationship*breakdown.RelationshipStrength +
			s.successWeights.Timing*breakdown.TimingOptimality +
			s.successWeights.Alignment*breakdown.StrategyAlignment)

	halfWidth := 5 + 25*(1-market.Confidence)
	return domain.SuccessEstimate{
		Overall:   overall,
		Breakdown: breakdown,
		ConfidenceInterval: domain.Interval{
			Min: roundTo2Decimals(clampScore(overall-halfWidth, 100)),
			Max: roundTo2Decimals(clampScore(overall+halfWidth, 100)),
		},
	}
}

func dominantFactor(f domain.FactorBreakdown) string {
	name, value := "market", f.Market
	if f.Financial > value {
		name, value = "financial", f.Financial
	}
	if f.Relationship > value {
		name, value = "relationship", f.Relationship
	}
	if f.Timing > value {
		name, value = "timing", f.Timing
	}
	return name
}
