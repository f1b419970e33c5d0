package loanmath

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned by Schedule for non-positive or non-finite
// inputs.
var ErrInvalidInput = errors.New("invalid loan input")

// Installment is one row of an amortization table.
type Installment struct {
	Month            int
	Payment          float64
	Interest         float64
	Principal        float64
	RemainingBalance float64
}

// Schedule builds the month-by-month amortization table of a loan. The last
// installment repays whatever balance is left so the table closes at zero.
func Schedule(principal, annualRatePercent float64, tenureMonths int) ([]Installment, error) {
	if tenureMonths <= 0 {
		return nil, fmt.Errorf("%w: tenure must be greater than zero", ErrInvalidInput)
	}
	res := ComputeEMI(principal, annualRatePercent, float64(tenureMonths))
	if !res.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, res.Reason)
	}

	r := MonthlyRate(annualRatePercent)
	balance := principal
	rows := make([]Installment, 0, tenureMonths)
	for month := 1; month <= tenureMonths; month++ {
		interest := balance * r
		payment := res.EMI
		repaid := payment - interest
		if month == tenureMonths || repaid > balance {
			repaid = balance
			payment = repaid + interest
		}
		balance = math.Max(0, balance-repaid)

		rows = append(rows, Installment{
			Month:            month,
			Payment:          payment,
			Interest:         interest,
			Principal:        repaid,
			RemainingBalance: balance,
		})
	}
	return rows, nil
}
