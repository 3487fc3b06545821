package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rent-agent/config"
	"rent-agent/domain"
	"rent-agent/provider"
	"rent-agent/repository"
)

var testLocation = domain.LocationRef{City: "Buffalo", State: "NY"}

func newMarketService(t *testing.T, providers ...provider.MarketDataProvider) *MarketService {
	t.Helper()
	return NewMarketService(providers, config.DefaultTables(),
		repository.NewMockCache(), zap.NewNop())
}

func quote(v domain.Money, conf float64) *provider.Quote {
	return &provider.Quote{Value: v, Confidence: conf}
}

func TestReconcile_ZeroProviders_Sentinel(t *testing.T) {
	s := newMarketService(t,
		&provider.StaticProvider{ProviderID: "gov-rent-index"},
		&provider.StaticProvider{ProviderID: "comparable-listings", Err: assert.AnError},
	)

	estimate := s.Reconcile(context.Background(), testLocation, domain.PropertySpec{Bedrooms: 1})

	assert.False(t, estimate.Available())
	assert.Nil(t, estimate.Median)
	assert.Zero(t, estimate.Confidence)
	require.Len(t, estimate.Sources, 2)
	for _, src := range estimate.Sources {
		assert.False(t, src.Available)
		assert.Zero(t, src.Weight)
	}
}

func TestReconcile_SingleProvider_ExactMedian(t *testing.T) {
	s := newMarketService(t,
		&provider.StaticProvider{ProviderID: "gov-rent-index", Quote: quote(1850, 0.9)},
	)

	estimate := s.Reconcile(context.Background(), testLocation, domain.PropertySpec{Bedrooms: 1})

	require.True(t, estimate.Available())
	assert.Equal(t, domain.Money(1850), *estimate.Median)
	assert.Greater(t, estimate.Confidence, 0.0)
	assert.Less(t, estimate.Confidence, 0.7, "a single source never earns high confidence")
	assert.Less(t, estimate.Range.Low, domain.Money(1850))
	assert.Greater(t, estimate.Range.High, domain.Money(1850))
}

func TestReconcile_AgreementRaisesConfidence(t *testing.T) {
	agreeing := newMarketService(t,
		&provider.StaticProvider{ProviderID: "gov-rent-index", Quote: quote(2000, 0.9)},
		&provider.StaticProvider{ProviderID: "commercial-rent-index", Quote: quote(2050, 0.8)},
	)
	disagreeing := newMarketService(t,
		&provider.StaticProvider{ProviderID: "gov-rent-index", Quote: quote(2000, 0.9)},
		&provider.StaticProvider{ProviderID: "commercial-rent-index", Quote: quote(2700, 0.8)},
	)

	spec := domain.PropertySpec{Bedrooms: 1}
	agree := agreeing.Reconcile(context.Background(), testLocation, spec)
	disagree := disagreeing.Reconcile(context.Background(), testLocation, spec)

	require.True(t, agree.Available())
	require.True(t, disagree.Available())
	assert.Greater(t, agree.Confidence, disagree.Confidence,
		"sources within 5%% must beat sources 30%% apart")
}

func TestReconcile_MoreSourcesRaiseConfidence(t *testing.T) {
	one := newMarketService(t,
		&provider.StaticProvider{ProviderID: "gov-rent-index", Quote: quote(2000, 0.9)},
	)
	two := newMarketService(t,
		&provider.StaticProvider{ProviderID: "gov-rent-index", Quote: quote(2000, 0.9)},
		&provider.StaticProvider{ProviderID: "commercial-rent-index", Quote: quote(2000, 0.8)},
	)

	spec := domain.PropertySpec{Bedrooms: 1}
	assert.Greater(t,
		two.Reconcile(context.Background(), testLocation, spec).Confidence,
		one.Reconcile(context.Background(), testLocation, spec).Confidence)
}

func TestReconcile_FailedProviderDoesNotBlockOthers(t *testing.T) {
	s := newMarketService(t,
		&provider.StaticProvider{ProviderID: "gov-rent-index", Err: assert.AnError},
		&provider.StaticProvider{ProviderID: "commercial-rent-index", Quote: quote(1700, 0.8)},
	)

	estimate := s.Reconcile(context.Background(), testLocation, domain.PropertySpec{Bedrooms: 2})

	require.True(t, estimate.Available())
	assert.Equal(t, domain.Money(1700), *estimate.Median)
}

func TestReconcile_CancelledContext_PartialResultsUsable(t *testing.T) {
	slow := &provider.StaticProvider{
		ProviderID: "comparable-listings",
		Quote:      quote(2400, 0.6),
		Delay:      200 * time.Millisecond,
	}
	fast := &provider.StaticProvider{ProviderID: "gov-rent-index", Quote: quote(2100, 0.9)}
	s := newMarketService(t, fast, slow)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	estimate := s.Reconcile(ctx, testLocation, domain.PropertySpec{Bedrooms: 1})

	// The slow provider timed out, which reads exactly like no data.
	require.True(t, estimate.Available())
	assert.Equal(t, domain.Money(2100), *estimate.Median)
}

func TestReconcile_CachesEstimates(t *testing.T) {
	p := &provider.StaticProvider{ProviderID: "gov-rent-index", Quote: quote(1500, 0.9)}
	s := newMarketService(t, p)

	spec := domain.PropertySpec{Bedrooms: 0}
	first := s.Reconcile(context.Background(), testLocation, spec)
	second := s.Reconcile(context.Background(), testLocation, spec)

	assert.Equal(t, 1, p.Calls, "second call must be served from cache")
	assert.Equal(t, *first.Median, *second.Median)
}

func TestReconcile_SentinelNotCached(t *testing.T) {
	p := &provider.StaticProvider{ProviderID: "gov-rent-index"}
	s := newMarketService(t, p)

	spec := domain.PropertySpec{Bedrooms: 1}
	s.Reconcile(context.Background(), testLocation, spec)
	s.Reconcile(context.Background(), testLocation, spec)

	assert.Equal(t, 2, p.Calls, "a zero-data result must not be cached")
}
