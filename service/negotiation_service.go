package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"rent-agent/domain"
	"rent-agent/repository"
)

// NegotiationService runs the full pipeline for one structured request:
// reconcile the market, score leverage and strategy, generate the roadmap,
// attach an explanation, persist the result. Invalid caller input is the
// only hard failure; every data shortfall degrades the plan instead.
type NegotiationService struct {
	market   *MarketService
	leverage *LeverageService
	roadmap  *RoadmapService
	ai       *AIService
	repo     repository.PlanRepository
	logger   *zap.Logger
}

func NewNegotiationService(
	market *MarketService,
	leverage *LeverageService,
	roadmap *RoadmapService,
	ai *AIService,
	repo repository.PlanRepository,
	logger *zap.Logger,
) *NegotiationService {
	return &NegotiationService{
		market:   market,
		leverage: leverage,
		roadmap:  roadmap,
		ai:       ai,
		repo:     repo,
		logger:   logger,
	}
}

// BuildPlan validates the request and runs reconcile → score → generate.
func (s *NegotiationService) BuildPlan(
	ctx context.Context,
	req domain.NegotiationRequest,
) (domain.NegotiationResult, error) {
	if err := validateRequest(req); err != nil {
		return domain.NegotiationResult{}, err
	}

	market := s.market.Reconcile(ctx, req.Location, req.Property)
	if !market.Available() {
		s.logger.Info("no market data available, plan degrades to qualitative guidance",
			zap.String("city", req.Location.City))
	}

	scored := s.leverage.Score(req.Profile, req.CurrentRent, market)
	plan := s.roadmap.Generate(
		scored.Strategy, scored.Leverage, req.Profile, market,
		req.CurrentRent, req.TargetRent)

	result := domain.NegotiationResult{
		Plan:     plan,
		Leverage: scored.Leverage,
		Strategy: scored.Strategy,
		Success:  scored.Success,
		Market:   market,
		Explanation: s.ai.GeneratePlanExplanation(
			ctx, scored.Strategy, scored.Leverage, scored.Success, market,
			req.CurrentRent, req.TargetRent),
	}

	// Persisting the plan is not critical to answering the request.
	if _, err := s.repo.Save(req, result); err != nil {
		s.logger.Warn("failed to save negotiation plan", zap.Error(err))
	}

	return result, nil
}

// validateRequest rejects contract violations by the caller. Data sparsity
// is never an error; nonsense input always is.
func validateRequest(req domain.NegotiationRequest) error {
	if req.CurrentRent <= 0 {
		return errors.New("invalid current rent")
	}
	if req.CurrentRent > MaxRentAmount {
		return fmt.Errorf("current rent exceeds the maximum of $%d", MaxRentAmount)
	}
	if req.TargetRent != nil {
		if *req.TargetRent <= 0 {
			return errors.New("invalid target rent")
		}
		if *req.TargetRent >= req.CurrentRent {
			return errors.New("target rent must be below current rent")
		}
	}
	if req.Location.City == "" {
		return errors.New("location city is required")
	}
	if req.Property.Bedrooms < 0 || req.Property.Bedrooms > MaxBedrooms {
		return fmt.Errorf("bedrooms must be between 0 and %d", MaxBedrooms)
	}
	if req.Profile.Market.VacancyRate < 0 || req.Profile.Market.VacancyRate > MaxVacancy {
		return errors.New("invalid vacancy rate")
	}
	if req.Profile.Tenant.TenancyMonths < 0 {
		return errors.New("invalid tenancy length")
	}
	if req.Profile.Tenant.AlternativeOptions < 0 {
		return errors.New("invalid alternative options count")
	}
	if req.Profile.Timing.DaysUntilDecision < 0 {
		return errors.New("invalid days until decision")
	}
	return nil
}
