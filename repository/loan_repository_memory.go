package repository

import (
	"context"
	"sync"

	"emi-engine/domain"
)

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
type LoanRepositoryMemory struct {
	mu   sync.RWMutex
	data []domain.CalculationRecord
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory() *LoanRepositoryMemory {
	return &LoanRepositoryMemory{
		data: []domain.CalculationRecord{},
	}
}

// Save stores the calculation in memory.
func (r *LoanRepositoryMemory) Save(
	_ context.Context,
	record domain.CalculationRecord,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, record)
	return nil
}

func (r *LoanRepositoryMemory) List(
	_ context.Context,
	limit int,
) ([]domain.CalculationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.data)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.CalculationRecord, 0, n)
	for i := len(r.data) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}
