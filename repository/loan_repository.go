package repository

import (
	"context"

	"emi-engine/domain"
)

// LoanRepository keeps the history of solved calculations.
type LoanRepository interface {
	Save(ctx context.Context, record domain.CalculationRecord) error
	// List returns at most limit records, newest first. A non-positive
	// limit returns every record.
	List(ctx context.Context, limit int) ([]domain.CalculationRecord, error)
}
