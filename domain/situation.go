package domain

// Level grades an attribute the tenant self-reports.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Relationship describes the tenant-landlord relationship.
type Relationship string

const (
	RelationshipPoor      Relationship = "poor"
	RelationshipNeutral   Relationship = "neutral"
	RelationshipGood      Relationship = "good"
	RelationshipExcellent Relationship = "excellent"
)

// RentTrend is the direction local asking rents are moving.
type RentTrend string

const (
	TrendFalling RentTrend = "falling"
	TrendFlat    RentTrend = "flat"
	TrendRising  RentTrend = "rising"
)

// LandlordType distinguishes who the tenant is negotiating with.
type LandlordType string

const (
	LandlordIndividual   LandlordType = "individual"
	LandlordSmallCompany LandlordType = "small_company"
	LandlordCorporate    LandlordType = "corporate"
)

// LeaseStatus is where the tenant sits in the lease cycle.
type LeaseStatus string

const (
	LeaseExpiring       LeaseStatus = "expiring"
	LeaseMonthToMonth   LeaseStatus = "month_to_month"
	LeaseMidTerm        LeaseStatus = "mid_term"
	LeaseRenewalOffered LeaseStatus = "renewal_offered"
)

// Tone is the tenant's declared conflict style.
type Tone string

const (
	ToneAssertive  Tone = "assertive"
	ToneDiplomatic Tone = "diplomatic"
	ToneCautious   Tone = "cautious"
)

type TenantAttributes struct {
	BudgetFlexibility    Level        `json:"budgetFlexibility"`
	TenancyMonths        int          `json:"tenancyMonths"`
	LandlordRelationship Relationship `json:"landlordRelationship"`
	Urgency              Level        `json:"urgency"`
	AlternativeOptions   int          `json:"alternativeOptions"`
}

type MarketConditions struct {
	VacancyRate  float64      `json:"vacancyRate"`
	RentTrend    RentTrend    `json:"rentTrend"`
	LandlordType LandlordType `json:"landlordType"`
}

type TimingAttributes struct {
	LeaseStatus       LeaseStatus `json:"leaseStatus"`
	DaysUntilDecision int         `json:"daysUntilDecision"`
	CompetingOffers   bool        `json:"competingOffers"`
}

// SituationProfile is caller-supplied, never derived from free text.
// Immutable input to scoring.
type SituationProfile struct {
	Tenant TenantAttributes `json:"tenant"`
	Market MarketConditions `json:"market"`
	Timing TimingAttributes `json:"timing"`
	Tone   Tone             `json:"tone"`
}
