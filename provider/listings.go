package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"rent-agent/domain"
)

const listingsID = "comparable-listings"

// minListingsForQuote is the fewest comparable listings worth quoting from.
// A single asking price says more about one landlord than about a market.
const minListingsForQuote = 3

// ListingsProvider derives a quote from currently advertised comparable
// listings. Asking prices are noisy and scraped, so this source carries the
// lowest base weight, but it is the only one that reacts within days.
type ListingsProvider struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
	logger     *zap.Logger
}

func NewListingsProvider(baseURL string, logger *zap.Logger) *ListingsProvider {
	return &ListingsProvider{
		baseURL: baseURL,
		enabled: baseURL != "",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (p *ListingsProvider) ID() string { return listingsID }

type listingsResponse struct {
	Listings []struct {
		Price int64 `json:"price"`
	} `json:"listings"`
}

func (p *ListingsProvider) Fetch(
	ctx context.Context,
	location domain.LocationRef,
	spec domain.PropertySpec,
) (*Quote, error) {
	if !p.enabled {
		return nil, nil
	}

	q := url.Values{}
	q.Set("city", location.City)
	q.Set("state", location.State)
	q.Set("bedrooms", strconv.Itoa(spec.Bedrooms))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/listings?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("listings feed error (status %d): %s", resp.StatusCode, string(body))
	}

	var payload listingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	prices := make([]int64, 0, len(payload.Listings))
	for _, l := range payload.Listings {
		if l.Price > 0 {
			prices = append(prices, l.Price)
		}
	}
	if len(prices) < minListingsForQuote {
		p.logger.Debug("too few comparable listings",
			zap.String("city", location.City),
			zap.Int("count", len(prices)))
		return nil, nil
	}

	sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })
	median := prices[len(prices)/2]
	if len(prices)%2 == 0 {
		median = (prices[len(prices)/2-1] + prices[len(prices)/2]) / 2
	}

	// More comparables, more trust, capped well below the benchmark indices.
	confidence := 0.3 + 0.05*float64(len(prices))
	if confidence > 0.75 {
		confidence = 0.75
	}

	return &Quote{
		Value:      domain.Money(median),
		Confidence: confidence,
	}, nil
}
