package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rent-agent/config"
	"rent-agent/domain"
	"rent-agent/provider"
	"rent-agent/repository"
)

// MarketService reconciles independent, unreliable market-data providers
// into one estimate. No single provider failure is fatal: a provider that
// errors, times out, or has no data is weight-zeroed and the rest carry the
// estimate. Zero available providers yields the sentinel estimate with
// confidence 0 and no median.
type MarketService struct {
	providers []provider.MarketDataProvider
	weights   map[string]float64
	cache     repository.CacheRepository
	logger    *zap.Logger
}

func NewMarketService(
	providers []provider.MarketDataProvider,
	tables config.Tables,
	cache repository.CacheRepository,
	logger *zap.Logger,
) *MarketService {
	return &MarketService{
		providers: providers,
		weights:   tables.ProviderWeights,
		cache:     cache,
		logger:    logger,
	}
}

// Reconcile blends all provider quotes for a market into one estimate.
// Provider calls fan out concurrently, each under its own timeout;
// cancellation of ctx leaves already-received partial results usable, which
// is treated identically to partial failure.
func (s *MarketService) Reconcile(
	ctx context.Context,
	location domain.LocationRef,
	spec domain.PropertySpec,
) domain.MarketEstimate {
	key := cacheKey(location, spec)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var estimate domain.MarketEstimate
		if err := json.Unmarshal([]byte(cached), &estimate); err == nil {
			return estimate
		}
		s.logger.Warn("discarding corrupt cached market estimate", zap.String("key", key))
	}

	quotes := s.fanOut(ctx, location, spec)
	estimate := s.reduce(quotes)

	if estimate.Available() {
		if data, err := json.Marshal(estimate); err == nil {
			if err := s.cache.Set(ctx, key, string(data), MarketCacheTTL); err != nil {
				s.logger.Warn("failed to cache market estimate",
					zap.String("key", key), zap.Error(err))
			}
		}
	}
	return estimate
}

// fanOut queries every provider concurrently. Errors and timeouts are
// logged and recorded as nil quotes; nothing cancels the sibling calls.
func (s *MarketService) fanOut(
	ctx context.Context,
	location domain.LocationRef,
	spec domain.PropertySpec,
) []*provider.Quote {
	quotes := make([]*provider.Quote, len(s.providers))

	g := new(errgroup.Group)
	for i, p := range s.providers {
		i, p := i, p
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(ctx, ProviderTimeout)
			defer cancel()

			quote, err := p.Fetch(pctx, location, spec)
			if err != nil {
				s.logger.Warn("market provider degraded",
					zap.String("provider", p.ID()),
					zap.String("city", location.City),
					zap.Error(err))
				return nil
			}
			quotes[i] = quote
			return nil
		})
	}
	g.Wait() // goroutines never return errors; degradation is per-slot

	return quotes
}

// reduce applies the weighting rule: each available quote contributes its
// static base weight scaled by the provider's own confidence; absent quotes
// contribute weight zero.
func (s *MarketService) reduce(quotes []*provider.Quote) domain.MarketEstimate {
	sources := make([]domain.SourceContribution, len(s.providers))
	totalBaseWeight := 0.0
	availableBaseWeight := 0.0
	weightSum := 0.0
	valueSum := 0.0
	var values []float64

	for i, p := range s.providers {
		base := s.weights[p.ID()]
		totalBaseWeight += base

		contribution := domain.SourceContribution{ProviderID: p.ID()}
		if q := quotes[i]; q != nil && base > 0 {
			w := base * q.Confidence
			v := q.Value
			contribution.Value = &v
			contribution.Weight = w
			contribution.Available = true

			availableBaseWeight += base
			weightSum += w
			valueSum += w * float64(q.Value)
			values = append(values, float64(q.Value))
		}
		sources[i] = contribution
	}

	if len(values) == 0 || weightSum == 0 {
		// Zero-data sentinel: no median is fabricated.
		return domain.MarketEstimate{
			Confidence: 0,
			Sources:    sources,
		}
	}

	median := domain.Money(math.Round(valueSum / weightSum))
	low, high := rentRange(values, float64(median))

	return domain.MarketEstimate{
		Median:     &median,
		Range:      domain.RentRange{Low: low, High: high},
		Confidence: s.confidence(values, float64(median), availableBaseWeight, totalBaseWeight),
		Sources:    sources,
	}
}

// rentRange brackets the blended distribution: the observed source extremes,
// widened to at least an 8% band so a single source still yields a range.
func rentRange(values []float64, median float64) (domain.Money, domain.Money) {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	low := math.Min(min, median*0.92)
	high := math.Max(max, median*1.08)
	return domain.Money(math.Round(low)), domain.Money(math.Round(high))
}

// confidence is monotonic in source count, source agreement, and available
// weight. Two agreeing sources beat two disagreeing ones; one source alone
// never reaches high confidence.
func (s *MarketService) confidence(values []float64, median, availableWeight, totalWeight float64) float64 {
	coverage := 0.0
	if totalWeight > 0 {
		coverage = availableWeight / totalWeight
	}

	agreement := 1.0
	if len(values) >= 2 && median > 0 {
		min, max := values[0], values[0]
		for _, v := range values[1:] {
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
		relSpread := (max - min) / median
		agreement = 1 - relSpread/AgreementSpreadCeiling
		agreement = math.Max(0, math.Min(1, agreement))
	}

	countFactor := 1.0
	switch len(values) {
	case 1:
		countFactor = 0.6
	case 2:
		countFactor = 0.85
	}

	conf := countFactor * (0.4*coverage + 0.6*agreement)
	return math.Max(0, math.Min(1, math.Round(conf*100)/100))
}

func cacheKey(location domain.LocationRef, spec domain.PropertySpec) string {
	return fmt.Sprintf("market:%s:%s:%d",
		strings.ToLower(location.City),
		strings.ToLower(location.State),
		spec.Bedrooms)
}
