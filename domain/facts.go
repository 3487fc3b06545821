package domain

// LocationRef identifies the rental market a message refers to.
type LocationRef struct {
	City  string `json:"city"`
	State string `json:"state,omitempty"`
	Raw   string `json:"raw"`
}

func (l LocationRef) String() string {
	if l.State != "" {
		return l.City + ", " + l.State
	}
	return l.City
}

// ExtractedFacts is the partial fact set parsed from one message. A nil
// field means the message did not supply that fact; it never means zero.
// Merging facts across a session is the caller's job.
type ExtractedFacts struct {
	CurrentRent     *Money       `json:"currentRent,omitempty"`
	TargetRent      *Money       `json:"targetRent,omitempty"`
	ReductionAmount *Money       `json:"reductionAmount,omitempty"`
	Location        *LocationRef `json:"location,omitempty"`
}
