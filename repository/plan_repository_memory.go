package repository

import (
	"sync"

	"github.com/google/uuid"

	"rent-agent/domain"
)

// PlanRecord pairs a stored plan with the request it answered.
type PlanRecord struct {
	ID      string
	Request domain.NegotiationRequest
	Result  domain.NegotiationResult
}

// PlanRepositoryMemory is an in-memory implementation of PlanRepository.
type PlanRepositoryMemory struct {
	mu   sync.Mutex
	data []PlanRecord
}

// NewPlanRepositoryMemory creates a new in-memory plan repository.
func NewPlanRepositoryMemory() *PlanRepositoryMemory {
	return &PlanRepositoryMemory{
		data: []PlanRecord{},
	}
}

// Save stores the plan in memory and returns its record ID.
func (r *PlanRepositoryMemory) Save(
	request domain.NegotiationRequest,
	result domain.NegotiationResult,
) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.data = append(r.data, PlanRecord{
		ID:      id,
		Request: request,
		Result:  result,
	})
	return id, nil
}

// Len reports how many plans are stored. Test helper.
func (r *PlanRepositoryMemory) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}
