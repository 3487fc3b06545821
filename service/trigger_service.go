package service

import (
	"regexp"
	"strings"

	"rent-agent/config"
	"rent-agent/domain"
)

// Signal family names reported in TriggerDecision.MatchedSignals.
const (
	signalKeyword        = "keyword"
	signalCompound       = "compound:negotiate-directional"
	signalRentAdjustment = "rent-adjustment"
)

var dollarAmountRe = regexp.MustCompile(`\$\s*[0-9][0-9,]*`)

// TriggerService decides whether a message warrants negotiation assistance.
// Three independent signal families are OR'ed together; any one firing is
// sufficient.
type TriggerService struct {
	tables    config.Tables
	extractor *ExtractorService
}

func NewTriggerService(tables config.Tables, extractor *ExtractorService) *TriggerService {
	return &TriggerService{
		tables:    tables,
		extractor: extractor,
	}
}

// ShouldTrigger classifies one message. Completeness reflects a parallel
// extraction of the same text so the caller can choose between generating a
// plan immediately and asking a follow-up; the engine holds no dialogue
// state.
func (s *TriggerService) ShouldTrigger(text string) domain.TriggerDecision {
	lower := strings.ToLower(text)
	signals := []string{}

	// Family 1: direct negotiation phrases.
	for _, kw := range s.tables.TriggerKeywords {
		if strings.Contains(lower, kw) {
			signals = append(signals, signalKeyword+":"+kw)
		}
	}

	// Family 2: "negotiate" co-occurring with a rent/amount token and a
	// directional word.
	if strings.Contains(lower, "negotiat") &&
		(s.hasRentWord(lower) || dollarAmountRe.MatchString(text)) &&
		s.hasDirectional(lower) {
		signals = append(signals, signalCompound)
	}

	// Family 3: a dollar amount plus a rent-context word plus a directional
	// target phrase. Catches detail-rich follow-up turns that never say
	// "negotiate".
	if dollarAmountRe.MatchString(text) &&
		s.hasRentWord(lower) &&
		s.hasTargetPhrase(lower) {
		signals = append(signals, signalRentAdjustment)
	}

	facts := s.extractor.Extract(text)

	return domain.TriggerDecision{
		ShouldTrigger:  len(signals) > 0,
		MatchedSignals: signals,
		Completeness: domain.Completeness{
			HasRent:     facts.CurrentRent != nil,
			HasTarget:   facts.TargetRent != nil,
			HasLocation: facts.Location != nil,
		},
		Facts: facts,
	}
}

func (s *TriggerService) hasRentWord(lower string) bool {
	for _, w := range s.tables.RentWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func (s *TriggerService) hasDirectional(lower string) bool {
	for _, w := range s.tables.DirectionalWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func (s *TriggerService) hasTargetPhrase(lower string) bool {
	for _, p := range s.tables.TargetPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
