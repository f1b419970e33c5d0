package service

import (
	"errors"

	"emi-engine/loanmath"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoSolution   = errors.New("no solution for the given inputs")
	ErrNumeric      = errors.New("calculation is numerically degenerate")
)

// CalculationError reports a solve that produced no valid result.
type CalculationError struct {
	Failure loanmath.Failure
	Reason  string
}

func (e *CalculationError) Error() string {
	if e.Reason == "" {
		return e.Unwrap().Error()
	}
	return e.Unwrap().Error() + ": " + e.Reason
}

func (e *CalculationError) Unwrap() error {
	switch e.Failure {
	case loanmath.FailureDomain:
		return ErrNoSolution
	case loanmath.FailureNumeric:
		return ErrNumeric
	default:
		return ErrInvalidInput
	}
}
