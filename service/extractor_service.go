package service

import (
	"regexp"
	"strconv"
	"strings"

	"rent-agent/config"
	"rent-agent/domain"
)

// amount is the shared dollar-amount fragment: optional $, digits with
// optional thousands separators. Cents are dropped.
const amount = `\$?\s*([0-9][0-9,]*)`

// amountRule anchors an amount pattern to a contextual phrase. Rules are
// tried in decreasing specificity order and the first match wins, so an
// amount binds to the fact whose anchor sits next to it, not to the first
// amount in reading order.
type amountRule struct {
	name string
	re   *regexp.Regexp
}

var currentRentRules = []amountRule{
	{"current-rent-is", regexp.MustCompile(`(?i)current\s+rent\s+is\s*` + amount)},
	{"currently-paying", regexp.MustCompile(`(?i)currently\s+paying\s*` + amount)},
	{"paying", regexp.MustCompile(`(?i)\bpaying\s*` + amount)},
	{"rent-is", regexp.MustCompile(`(?i)\brent\s+is\s*` + amount)},
	{"rent-of", regexp.MustCompile(`(?i)\brent\s+of\s*` + amount)},
}

var targetRentRules = []amountRule{
	{"down-to", regexp.MustCompile(`(?i)\bdown\s+to\s*` + amount)},
	{"reduce-to", regexp.MustCompile(`(?i)\breduce(?:\s+it)?\s+to\s*` + amount)},
	{"drop-to", regexp.MustCompile(`(?i)\bdrop(?:\s+it)?\s+to\s*` + amount)},
	{"want-it-at", regexp.MustCompile(`(?i)\bwant\s+it\s+at\s*` + amount)},
	{"target", regexp.MustCompile(`(?i)\btarget(?:\s+rent)?(?:\s+of|\s+is)?\s*` + amount)},
}

// reductionRules require a literal $ so "by 5" in unrelated text never
// parses as money. The reduction is only ever combined with a current rent
// from the same message, never asserted on its own.
var reductionRules = []amountRule{
	{"by-amount", regexp.MustCompile(`(?i)\bby\s*\$\s*([0-9][0-9,]*)`)},
}

// cityStateRe matches the explicit "City, ST" form, the most specific
// location pattern.
var cityStateRe = regexp.MustCompile(`\b([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*),\s*([A-Z]{2})\b`)

// prepositionCityRe is the last-resort pattern: a capitalized phrase behind
// a location preposition.
var prepositionCityRe = regexp.MustCompile(`\b(?:in|at|near|around)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})\b`)

// ExtractorService parses free text into a partial fact set. It never
// returns an error; a fact the text does not supply stays nil.
type ExtractorService struct {
	gazetteer map[string]config.GazetteerEntry
	cityRes   map[string]*regexp.Regexp
}

// NewExtractorService creates an extractor over the configured gazetteer.
func NewExtractorService(tables config.Tables) *ExtractorService {
	cityRes := make(map[string]*regexp.Regexp, len(tables.Gazetteer))
	for key := range tables.Gazetteer {
		cityRes[key] = regexp.MustCompile(`\b` + regexp.QuoteMeta(key) + `\b`)
	}
	return &ExtractorService{
		gazetteer: tables.Gazetteer,
		cityRes:   cityRes,
	}
}

// Extract parses one message. Facts are bound by anchor proximity: each rule
// captures the amount adjacent to its own anchor phrase, so two amounts in
// one sentence land on the right facts regardless of their order.
func (s *ExtractorService) Extract(text string) domain.ExtractedFacts {
	var facts domain.ExtractedFacts

	if v, ok := firstAmount(currentRentRules, text); ok {
		facts.CurrentRent = domain.MoneyPtr(v)
	}
	if v, ok := firstAmount(targetRentRules, text); ok {
		facts.TargetRent = domain.MoneyPtr(v)
	}

	// "by $N" only means something relative to a current rent in the same
	// message. An explicit target anchor always wins over the derived one.
	if facts.CurrentRent != nil {
		if n, ok := firstAmount(reductionRules, text); ok && n < *facts.CurrentRent {
			facts.ReductionAmount = domain.MoneyPtr(n)
			if facts.TargetRent == nil {
				facts.TargetRent = domain.MoneyPtr(*facts.CurrentRent - n)
			}
		}
	}

	facts.Location = s.extractLocation(text)
	return facts
}

func firstAmount(rules []amountRule, text string) (domain.Money, bool) {
	for _, rule := range rules {
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := parseAmount(m[1]); ok {
			return v, true
		}
	}
	return 0, false
}

// parseAmount strips thousands separators before integer conversion.
func parseAmount(raw string) (domain.Money, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil || v <= 0 || v > MaxRentAmount {
		return 0, false
	}
	return domain.Money(v), true
}

// extractLocation tries patterns in decreasing specificity: explicit
// "City, ST", then the closed gazetteer, then a preposition-anchored
// capitalized phrase. First success short-circuits the rest.
func (s *ExtractorService) extractLocation(text string) *domain.LocationRef {
	if m := cityStateRe.FindStringSubmatch(text); m != nil {
		return &domain.LocationRef{
			City:  m[1],
			State: m[2],
			Raw:   m[1] + ", " + m[2],
		}
	}

	lower := strings.ToLower(text)
	best := ""
	for key := range s.gazetteer {
		if s.cityRes[key].MatchString(lower) && len(key) > len(best) {
			best = key
		}
	}
	if best != "" {
		entry := s.gazetteer[best]
		return &domain.LocationRef{
			City:  entry.City,
			State: entry.State,
			Raw:   entry.City + ", " + entry.State,
		}
	}

	if m := prepositionCityRe.FindStringSubmatch(text); m != nil {
		return &domain.LocationRef{
			City: m[1],
			Raw:  m[1],
		}
	}
	return nil
}
