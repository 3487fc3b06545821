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

const commercialIndexID = "commercial-rent-index"

// CommercialIndexProvider queries a commercial rent-index API. Fresher than
// the government benchmark but methodology varies by vendor, so it carries a
// lower base weight in reconciliation.
type CommercialIndexProvider struct {
	baseURL    string
	apiKey     string
	enabled    bool
	httpClient *http.Client
	logger     *zap.Logger
}

func NewCommercialIndexProvider(baseURL, apiKey string, logger *zap.Logger) *CommercialIndexProvider {
	return &CommercialIndexProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		enabled: baseURL != "" && apiKey != "",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (p *CommercialIndexProvider) ID() string { return commercialIndexID }

type commercialIndexResponse struct {
	MedianRent int64   `json:"medianRent"`
	Confidence float64 `json:"confidence"`
}

func (p *CommercialIndexProvider) Fetch(
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
	if spec.PropertyType != "" {
		q.Set("propertyType", spec.PropertyType)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"/v1/rent-index?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		p.logger.Debug("commercial index has no data for market",
			zap.String("city", location.City),
			zap.String("state", location.State))
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("commercial index error (status %d): %s", resp.StatusCode, string(body))
	}

	var payload commercialIndexResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.MedianRent <= 0 {
		return nil, nil
	}

	confidence := payload.Confidence
	if confidence <= 0 || confidence > 1 {
		confidence = 0.7
	}

	return &Quote{
		Value:      domain.Money(payload.MedianRent),
		Confidence: confidence,
	}, nil
}
