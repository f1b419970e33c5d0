package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"emi-engine/domain"
	"emi-engine/loanmath"
)

type ScheduleService struct {
	logger *zap.Logger
}

func NewScheduleService(logger *zap.Logger) *ScheduleService {
	return &ScheduleService{logger: logger.Named("schedule_service")}
}

// BuildSchedule returns the amortization table of a loan with its totals.
func (s *ScheduleService) BuildSchedule(
	ctx context.Context,
	input domain.ScheduleInput,
) (domain.ScheduleResult, error) {

	if err := ctx.Err(); err != nil {
		return domain.ScheduleResult{}, err
	}
	if input.Principal > MaxLoanAmount {
		return domain.ScheduleResult{}, fmt.Errorf("principal exceeds the maximum of %.2f", MaxLoanAmount)
	}
	if input.InterestRate > MaxInterestRate {
		return domain.ScheduleResult{}, fmt.Errorf("interest rate exceeds the maximum of %.2f%%", MaxInterestRate)
	}
	if input.TenureMonths > MaxTenureMonths {
		return domain.ScheduleResult{}, fmt.Errorf("tenure exceeds the maximum of %d months", MaxTenureMonths)
	}

	rows, err := loanmath.Schedule(input.Principal, input.InterestRate, input.TenureMonths)
	if err != nil {
		return domain.ScheduleResult{}, err
	}

	entries := make([]domain.ScheduleEntry, len(rows))
	payments := make([]float64, len(rows))
	interest := make([]float64, len(rows))
	for i, row := range rows {
		entries[i] = domain.ScheduleEntry{
			Month:            row.Month,
			Payment:          roundTo2Decimals(row.Payment),
			Interest:         roundTo2Decimals(row.Interest),
			Principal:        roundTo2Decimals(row.Principal),
			RemainingBalance: roundTo2Decimals(row.RemainingBalance),
		}
		payments[i] = row.Payment
		interest[i] = row.Interest
	}

	s.logger.Debug("built schedule",
		zap.Float64("principal", input.Principal),
		zap.Int("months", len(entries)))

	return domain.ScheduleResult{
		EMI:           roundTo2Decimals(rows[0].Payment),
		TotalPayment:  sumRounded(payments...),
		TotalInterest: sumRounded(interest...),
		Entries:       entries,
	}, nil
}
