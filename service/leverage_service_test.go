package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rent-agent/config"
	"rent-agent/domain"
)

func newLeverage(t *testing.T) *LeverageService {
	t.Helper()
	return NewLeverageService(config.DefaultTables())
}

func strongMarketProfile() domain.SituationProfile {
	return domain.SituationProfile{
		Tenant: domain.TenantAttributes{
			BudgetFlexibility:    domain.LevelHigh,
			TenancyMonths:        0,
			LandlordRelationship: domain.RelationshipPoor,
			Urgency:              domain.LevelLow,
			AlternativeOptions:   3,
		},
		Market: domain.MarketConditions{
			VacancyRate:  8,
			RentTrend:    domain.TrendFalling,
			LandlordType: domain.LandlordIndividual,
		},
		Timing: domain.TimingAttributes{
			LeaseStatus:       domain.LeaseMidTerm,
			DaysUntilDecision: 3,
		},
		Tone: domain.ToneAssertive,
	}
}

func relationshipProfile() domain.SituationProfile {
	return domain.SituationProfile{
		Tenant: domain.TenantAttributes{
			BudgetFlexibility:    domain.LevelLow,
			TenancyMonths:        40,
			LandlordRelationship: domain.RelationshipExcellent,
			Urgency:              domain.LevelHigh,
			AlternativeOptions:   0,
		},
		Market: domain.MarketConditions{
			VacancyRate:  2,
			RentTrend:    domain.TrendRising,
			LandlordType: domain.LandlordIndividual,
		},
		Timing: domain.TimingAttributes{
			LeaseStatus:       domain.LeaseMidTerm,
			DaysUntilDecision: 60,
		},
		Tone: domain.ToneDiplomatic,
	}
}

func balancedProfile() domain.SituationProfile {
	return domain.SituationProfile{
		Tenant: domain.TenantAttributes{
			BudgetFlexibility:    domain.LevelMedium,
			TenancyMonths:        24,
			LandlordRelationship: domain.RelationshipGood,
			Urgency:              domain.LevelMedium,
			AlternativeOptions:   2,
		},
		Market: domain.MarketConditions{
			VacancyRate:  4,
			RentTrend:    domain.TrendFlat,
			LandlordType: domain.LandlordCorporate,
		},
		Timing: domain.TimingAttributes{
			LeaseStatus:       domain.LeaseMidTerm,
			DaysUntilDecision: 30,
		},
		Tone: domain.ToneDiplomatic,
	}
}

func noMarket() domain.MarketEstimate {
	return domain.MarketEstimate{Confidence: 0}
}

func TestScore_TotalIsMeanOfFactors(t *testing.T) {
	s := newLeverage(t)

	profiles := []domain.SituationProfile{
		strongMarketProfile(),
		relationshipProfile(),
		balancedProfile(),
		{}, // zero values still stay in range
	}

	for _, p := range profiles {
		result := s.Score(p, 2000, noMarket())
		f := result.Leverage.Factors

		mean := (f.Market + f.Financial + f.Relationship + f.Timing) / 4
		assert.InDelta(t, mean, result.Leverage.Total, 0.01)
		assert.GreaterOrEqual(t, result.Leverage.Total, 0.0)
		assert.LessOrEqual(t, result.Leverage.Total, 10.0)
		for _, v := range []float64{f.Market, f.Financial, f.Relationship, f.Timing} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 10.0)
		}
	}
}

func TestScore_StrategyTable(t *testing.T) {
	s := newLeverage(t)

	t.Run("market and financial leverage with assertive tone", func(t *testing.T) {
		result := s.Score(strongMarketProfile(), 2000, noMarket())
		assert.Equal(t, domain.StrategyLeverageFocused, result.Strategy)
	})

	t.Run("relationship leverage with diplomatic tone", func(t *testing.T) {
		result := s.Score(relationshipProfile(), 2000, noMarket())
		assert.Equal(t, domain.StrategyRelationshipBuilding, result.Strategy)
	})

	t.Run("balanced signals default to collaborative", func(t *testing.T) {
		result := s.Score(balancedProfile(), 2000, noMarket())
		assert.Equal(t, domain.StrategyCollaborative, result.Strategy)
	})
}

func TestScore_Deterministic(t *testing.T) {
	s := newLeverage(t)

	a := s.Score(relationshipProfile(), 1800, noMarket())
	b := s.Score(relationshipProfile(), 1800, noMarket())

	assert.Equal(t, a, b)
}

func TestScore_ConfidenceIntervalWidensWithNoisyMarket(t *testing.T) {
	s := newLeverage(t)
	median := domain.Money(2000)

	solid := domain.MarketEstimate{
		Median:     &median,
		Range:      domain.RentRange{Low: 1800, High: 2200},
		Confidence: 0.9,
	}
	noisy := domain.MarketEstimate{
		Median:     &median,
		Range:      domain.RentRange{Low: 1800, High: 2200},
		Confidence: 0.2,
	}

	p := balancedProfile()
	solidCI := s.Score(p, 2100, solid).Success.ConfidenceInterval
	noisyCI := s.Score(p, 2100, noisy).Success.ConfidenceInterval

	assert.Greater(t, noisyCI.Max-noisyCI.Min, solidCI.Max-solidCI.Min,
		"a noisier market estimate must widen the probability band")
}

func TestScore_SuccessBreakdownInRange(t *testing.T) {
	s := newLeverage(t)
	median := domain.Money(1900)
	market := domain.MarketEstimate{
		Median:     &median,
		Range:      domain.RentRange{Low: 1700, High: 2100},
		Confidence: 0.8,
	}

	result := s.Score(strongMarketProfile(), 2050, market)
	b := result.Success.Breakdown

	for _, v := range []float64{b.MarketConditions, b.RelationshipStrength, b.TimingOptimality, b.StrategyAlignment} {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
	require.LessOrEqual(t, result.Success.ConfidenceInterval.Min, result.Success.Overall)
	require.GreaterOrEqual(t, result.Success.ConfidenceInterval.Max, result.Success.Overall)
}

func TestScore_NoMarketDataStaysNeutral(t *testing.T) {
	s := newLeverage(t)

	result := s.Score(balancedProfile(), 2000, noMarket())

	// Without data the market component must sit at the neutral midpoint,
	// never at an invented extreme.
	assert.Equal(t, 50.0, result.Success.Breakdown.MarketConditions)
}
