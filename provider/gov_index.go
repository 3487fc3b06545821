package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"rent-agent/domain"
)

const govIndexID = "gov-rent-index"

// GovIndexProvider queries a government fair-market-rent benchmark. These
// indices are published per metro and bedroom count and update slowly, but
// they are the most reliable anchor available.
type GovIndexProvider struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGovIndexProvider(baseURL string, logger *zap.Logger) *GovIndexProvider {
	return &GovIndexProvider{
		baseURL: baseURL,
		enabled: baseURL != "",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (p *GovIndexProvider) ID() string { return govIndexID }

type govIndexResponse struct {
	FairMarketRent int64 `json:"fairMarketRent"`
}

func (p *GovIndexProvider) Fetch(
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
		p.baseURL+"/fmr?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		p.logger.Debug("gov index has no data for market",
			zap.String("city", location.City),
			zap.String("state", location.State))
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gov index error (status %d): %s", resp.StatusCode, string(body))
	}

	var payload govIndexResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.FairMarketRent <= 0 {
		return nil, nil
	}

	return &Quote{
		Value:      domain.Money(payload.FairMarketRent),
		Confidence: 0.9,
	}, nil
}
