package domain

// PropertySpec narrows a market query to comparable units.
type PropertySpec struct {
	Bedrooms     int    `json:"bedrooms"`
	PropertyType string `json:"propertyType,omitempty"`
}

// SourceContribution records what one provider contributed to an estimate.
// Weight is zero when the provider returned no value.
type SourceContribution struct {
	ProviderID string  `json:"providerId"`
	Value      *Money  `json:"value,omitempty"`
	Weight     float64 `json:"weight"`
	Available  bool    `json:"available"`
}

// RentRange brackets the blended distribution.
type RentRange struct {
	Low  Money `json:"low"`
	High Money `json:"high"`
}

// MarketEstimate is the reconciled view of a rental market. A nil Median
// with Confidence 0 is the zero-data sentinel: no provider returned a value
// and downstream consumers must degrade to qualitative guidance instead of
// fabricating numbers.
type MarketEstimate struct {
	Median     *Money               `json:"median,omitempty"`
	Range      RentRange            `json:"range"`
	Confidence float64              `json:"confidence"`
	Sources    []SourceContribution `json:"sources"`
}

// Available reports whether at least one provider contributed a value.
func (e MarketEstimate) Available() bool {
	return e.Median != nil
}

// PercentileOf places a rent within the blended distribution. Low and high
// anchor the 10th and 90th percentiles, the median the 50th; between anchors
// the percentile is linear, beyond them it extrapolates and clamps to
// [0,100]. Without data the midpoint is returned.
func (e MarketEstimate) PercentileOf(rent Money) float64 {
	if e.Median == nil {
		return 50
	}
	low := float64(e.Range.Low)
	med := float64(*e.Median)
	high := float64(e.Range.High)
	r := float64(rent)

	var p float64
	if r <= med {
		span := med - low
		if span <= 0 {
			if r < med {
				return 0
			}
			return 50
		}
		p = 50 - 40*(med-r)/span
	} else {
		span := high - med
		if span <= 0 {
			return 100
		}
		p = 50 + 40*(r-med)/span
	}

	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
