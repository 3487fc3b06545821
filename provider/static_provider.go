package provider

import (
	"context"
	"time"

	"rent-agent/domain"
)

// StaticProvider returns a fixed quote, error, or nothing. Used in tests and
// as a stand-in when no real provider credentials are configured.
type StaticProvider struct {
	ProviderID string
	Quote      *Quote
	Err        error
	Delay      time.Duration

	Calls int
}

func (s *StaticProvider) ID() string { return s.ProviderID }

func (s *StaticProvider) Fetch(
	ctx context.Context,
	location domain.LocationRef,
	spec domain.PropertySpec,
) (*Quote, error) {
	s.Calls++
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Quote, nil
}
