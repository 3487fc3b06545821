package service

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rent-agent/domain"
)

func testMarket() domain.MarketEstimate {
	median := domain.Money(1900)
	return domain.MarketEstimate{
		Median:     &median,
		Range:      domain.RentRange{Low: 1700, High: 2100},
		Confidence: 0.8,
	}
}

func planText(plan domain.RoadmapPlan) string {
	var b strings.Builder
	for _, phase := range plan.Phases {
		for _, step := range phase.Steps {
			b.WriteString(step.Title)
			for _, a := range step.ActionItems {
				b.WriteString(a.Description)
			}
			for _, m := range step.SuccessMetrics {
				b.WriteString(m)
			}
		}
	}
	return b.String()
}

func TestGenerate_Idempotent(t *testing.T) {
	s := NewRoadmapService()
	leverage := domain.LeverageScore{Total: 6.5}
	target := domain.MoneyPtr(1800)

	a := s.Generate(domain.StrategyAssertiveCollaborative, leverage,
		balancedProfile(), testMarket(), 2000, target)
	b := s.Generate(domain.StrategyAssertiveCollaborative, leverage,
		balancedProfile(), testMarket(), 2000, target)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("identical inputs produced different plans (-first +second):\n%s", diff)
	}
}

func TestGenerate_PhaseStructure(t *testing.T) {
	s := NewRoadmapService()

	plan := s.Generate(domain.StrategyCollaborative, domain.LeverageScore{Total: 5},
		balancedProfile(), testMarket(), 2000, domain.MoneyPtr(1800))

	require.Len(t, plan.Phases, 5)
	names := []string{}
	for i, phase := range plan.Phases {
		assert.Equal(t, domain.PhasePending, phase.Status)
		assert.NotEmpty(t, phase.Steps)
		assert.Contains(t, phase.ID, "phase-")
		names = append(names, phase.Name)
		for _, step := range phase.Steps {
			assert.Equal(t, domain.StepPending, step.Status)
			assert.NotEmpty(t, step.ActionItems)
			assert.NotEmpty(t, step.SuccessMetrics)
			assert.Contains(t, step.ID, plan.Phases[i].ID)
		}
	}
	assert.Equal(t, []string{
		"Research the market",
		"Gather your evidence",
		"Make the initial ask",
		"Handle the counter",
		"Close and confirm",
	}, names)
}

func TestGenerate_RealNumbersInMetrics(t *testing.T) {
	s := NewRoadmapService()

	plan := s.Generate(domain.StrategyCollaborative, domain.LeverageScore{Total: 5},
		balancedProfile(), testMarket(), 2000, domain.MoneyPtr(1800))
	text := planText(plan)

	assert.Contains(t, text, "$1800", "target rent must appear literally")
	assert.Contains(t, text, "$200", "target reduction must appear literally")
	assert.Contains(t, text, "$1700", "comparable range low must appear literally")
	assert.Contains(t, text, "$2100", "comparable range high must appear literally")
}

func TestGenerate_SentinelMarketDegradesToQualitative(t *testing.T) {
	s := NewRoadmapService()
	sentinel := domain.MarketEstimate{Confidence: 0}

	plan := s.Generate(domain.StrategyCollaborative, domain.LeverageScore{Total: 5},
		balancedProfile(), sentinel, 2000, nil)
	research := plan.Phases[0]

	text := planText(domain.RoadmapPlan{Phases: []domain.Phase{research}})
	assert.NotContains(t, text, "$", "no numbers may be fabricated without market data")
	assert.Contains(t, text, "yourself")
}

func TestGenerate_AdaptationTriggers(t *testing.T) {
	s := NewRoadmapService()

	t.Run("competing-offer claim always covered", func(t *testing.T) {
		plan := s.Generate(domain.StrategyCollaborative, domain.LeverageScore{Total: 5},
			balancedProfile(), testMarket(), 2000, nil)

		found := false
		for _, trig := range plan.AdaptationTriggers {
			if strings.Contains(trig.Condition, "another applicant") {
				found = true
				assert.Equal(t, domain.ImpactMajor, trig.Impact)
			}
		}
		assert.True(t, found)
	})

	t.Run("thin market data adds an evidence trigger", func(t *testing.T) {
		weak := testMarket()
		weak.Confidence = 0.2

		strongPlan := s.Generate(domain.StrategyCollaborative, domain.LeverageScore{Total: 5},
			balancedProfile(), testMarket(), 2000, nil)
		weakPlan := s.Generate(domain.StrategyCollaborative, domain.LeverageScore{Total: 5},
			balancedProfile(), weak, 2000, nil)

		assert.Greater(t, len(weakPlan.AdaptationTriggers), len(strongPlan.AdaptationTriggers))
	})

	t.Run("mid-term lease adds a patience trigger", func(t *testing.T) {
		p := balancedProfile()
		p.Timing.LeaseStatus = domain.LeaseMidTerm

		plan := s.Generate(domain.StrategyCollaborative, domain.LeverageScore{Total: 5},
			p, testMarket(), 2000, nil)

		found := false
		for _, trig := range plan.AdaptationTriggers {
			if strings.Contains(trig.SuggestedAdjustment, "strategic patience") {
				found = true
			}
		}
		assert.True(t, found)
	})
}
