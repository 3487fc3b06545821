// Package provider contains the market-data provider adapters the
// reconciler fans out to. Adapters are unreliable and optional: returning
// (nil, nil) means "no data for this market" and is never an error; an error
// means transport-level failure, which the reconciler treats the same way.
package provider

import (
	"context"

	"rent-agent/domain"
)

// Quote is one provider's opinion of a market's median rent.
type Quote struct {
	Value      domain.Money `json:"value"`
	Confidence float64      `json:"confidence"`
}

// MarketDataProvider is the collaborator contract for one data source.
type MarketDataProvider interface {
	// ID identifies the provider in source contributions and weight tables.
	ID() string

	// Fetch returns the provider's quote for the given market, nil when the
	// provider has no data there. Fetch must honor ctx cancellation.
	Fetch(ctx context.Context, location domain.LocationRef, spec domain.PropertySpec) (*Quote, error)
}
