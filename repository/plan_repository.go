package repository

import "rent-agent/domain"

// PlanRepository stores generated negotiation plans alongside the request
// that produced them. Save returns the assigned record ID.
type PlanRepository interface {
	Save(request domain.NegotiationRequest, result domain.NegotiationResult) (string, error)
}
