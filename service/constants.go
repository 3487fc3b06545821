package service

import "time"

const (
	MaxRentAmount = 1_000_000 // monthly rent ceiling, dollars
	MaxBedrooms   = 10
	MaxVacancy    = 100.0

	// ProviderTimeout bounds each provider call inside the fan-out. A
	// provider that exceeds it counts as having returned no data.
	ProviderTimeout = 5 * time.Second

	// MarketCacheTTL bounds how long a reconciled estimate is reused.
	// Benchmark indices move monthly; listings churn daily at most.
	MarketCacheTTL = 6 * time.Hour

	// AgreementSpreadCeiling is the relative spread between provider values
	// at which source agreement bottoms out at zero.
	AgreementSpreadCeiling = 0.5
)
