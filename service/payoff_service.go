package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"emi-engine/domain"
	"emi-engine/loanmath"
)

const (
	StrategySnowball  = "snowball"
	StrategyAvalanche = "avalanche"
	StrategyCompare   = "compare"
)

type PayoffService struct {
	logger *zap.Logger
}

func NewPayoffService(logger *zap.Logger) *PayoffService {
	return &PayoffService{logger: logger.Named("payoff_service")}
}

// PlanPayoff simulates repaying every debt from a fixed monthly budget. Each
// month all minimums are paid and the surplus rolls down the strategy's
// priority order.
func (s *PayoffService) PlanPayoff(
	ctx context.Context,
	input domain.PayoffInput,
) (domain.PayoffResult, error) {

	if err := validatePayoffInput(input); err != nil {
		return domain.PayoffResult{}, err
	}

	var result domain.PayoffResult
	if input.Strategy == StrategyCompare {
		snowball, err := s.simulate(ctx, input, StrategySnowball)
		if err != nil {
			return domain.PayoffResult{}, err
		}
		avalanche, err := s.simulate(ctx, input, StrategyAvalanche)
		if err != nil {
			return domain.PayoffResult{}, err
		}

		result = snowball
		if betterPlan(avalanche, snowball) {
			result = avalanche
		}
		result.Comparison = &domain.PayoffComparison{
			Snowball:      domain.StrategySummary{TotalInterest: snowball.TotalInterest, Months: snowball.Months},
			Avalanche:     domain.StrategySummary{TotalInterest: avalanche.TotalInterest, Months: avalanche.Months},
			InterestSaved: roundTo2Decimals(math.Max(0, snowball.TotalInterest-avalanche.TotalInterest)),
			MonthsSaved:   snowball.Months - avalanche.Months,
		}
	} else {
		var err error
		result, err = s.simulate(ctx, input, input.Strategy)
		if err != nil {
			return domain.PayoffResult{}, err
		}
	}

	result.Explanation = explainPayoff(result)
	return result, nil
}

func validatePayoffInput(input domain.PayoffInput) error {
	if len(input.Debts) == 0 {
		return errors.New("no debts supplied")
	}
	if len(input.Debts) > MaxDebtsPerRequest {
		return fmt.Errorf("number of debts exceeds the maximum of %d", MaxDebtsPerRequest)
	}
	if input.MonthlyBudget <= 0 {
		return errors.New("invalid monthly budget")
	}
	switch input.Strategy {
	case StrategySnowball, StrategyAvalanche, StrategyCompare:
	default:
		return fmt.Errorf("unknown strategy %q", input.Strategy)
	}

	names := make(map[string]bool, len(input.Debts))
	minimums := 0.0
	interestDue := 0.0
	for _, debt := range input.Debts {
		switch {
		case debt.Name == "":
			return errors.New("debt name must not be empty")
		case names[debt.Name]:
			return fmt.Errorf("duplicate debt name: %s", debt.Name)
		case debt.Balance <= 0:
			return fmt.Errorf("invalid balance for %s", debt.Name)
		case debt.Balance > MaxDebtAmount:
			return fmt.Errorf("balance of %s exceeds the maximum of %.2f", debt.Name, MaxDebtAmount)
		case debt.InterestRate < 0:
			return fmt.Errorf("invalid interest rate for %s", debt.Name)
		case debt.InterestRate > MaxInterestRate:
			return fmt.Errorf("interest rate of %s exceeds the maximum of %.2f%%", debt.Name, MaxInterestRate)
		case debt.MinimumPayment <= 0:
			return fmt.Errorf("invalid minimum payment for %s", debt.Name)
		}
		names[debt.Name] = true

		interest := debt.Balance * loanmath.MonthlyRate(debt.InterestRate)
		if debt.MinimumPayment < interest {
			return fmt.Errorf("minimum payment of %s (%.2f) is below its monthly interest (%.2f)",
				debt.Name, debt.MinimumPayment, interest)
		}
		minimums += debt.MinimumPayment
		interestDue += interest
	}

	if minimums > input.MonthlyBudget {
		return fmt.Errorf("monthly budget %.2f does not cover the minimum payments %.2f",
			input.MonthlyBudget, minimums)
	}
	if input.MonthlyBudget <= interestDue {
		return fmt.Errorf("monthly budget %.2f does not exceed the monthly interest %.2f; the debts are never repaid",
			input.MonthlyBudget, interestDue)
	}
	return nil
}

type debtState struct {
	domain.Debt
	remaining float64
	rate      float64
}

func prioritize(debts []domain.Debt, strategy string) []*debtState {
	states := make([]*debtState, len(debts))
	for i, d := range debts {
		states[i] = &debtState{Debt: d, remaining: d.Balance, rate: loanmath.MonthlyRate(d.InterestRate)}
	}

	if strategy == StrategySnowball {
		sort.SliceStable(states, func(i, j int) bool {
			return states[i].Balance < states[j].Balance
		})
	} else {
		sort.SliceStable(states, func(i, j int) bool {
			return states[i].InterestRate > states[j].InterestRate
		})
	}
	return states
}

func (s *PayoffService) simulate(
	ctx context.Context,
	input domain.PayoffInput,
	strategy string,
) (domain.PayoffResult, error) {

	debts := prioritize(input.Debts, strategy)
	plan := []domain.PayoffMonth{}
	totalInterest := 0.0
	totalDebt := 0.0
	for _, d := range debts {
		totalDebt += d.Balance
	}

	month := 0
	for {
		if err := ctx.Err(); err != nil {
			return domain.PayoffResult{}, err
		}
		month++
		available := input.MonthlyBudget
		paid := make(map[string]float64, len(debts))

		for _, d := range debts {
			if d.remaining <= DebtBalanceTolerance {
				continue
			}
			interest := d.remaining * d.rate
			totalInterest += interest

			payment := math.Min(math.Max(d.MinimumPayment, interest), d.remaining+interest)
			payment = math.Min(payment, available)

			d.remaining = math.Max(0, d.remaining+interest-payment)
			available -= payment
			paid[d.Name] += payment
		}

		for _, d := range debts {
			if available <= 0 {
				break
			}
			if d.remaining <= DebtBalanceTolerance {
				continue
			}
			extra := math.Min(available, d.remaining)
			d.remaining -= extra
			available -= extra
			paid[d.Name] += extra
		}

		payments := []domain.DebtPayment{}
		monthTotal := 0.0
		for _, d := range debts {
			amount, ok := paid[d.Name]
			if !ok {
				continue
			}
			payments = append(payments, domain.DebtPayment{
				DebtName:         d.Name,
				Payment:          roundTo2Decimals(amount),
				RemainingBalance: roundTo2Decimals(d.remaining),
			})
			monthTotal += amount
		}
		plan = append(plan, domain.PayoffMonth{
			Month:     month,
			Payments:  payments,
			TotalPaid: roundTo2Decimals(monthTotal),
		})

		if allRepaid(debts) {
			break
		}
		if month >= MaxPayoffMonths {
			s.logger.Warn("payoff simulation hit the month limit",
				zap.String("strategy", strategy),
				zap.Int("limit", MaxPayoffMonths))
			break
		}
	}

	remaining := 0.0
	for _, d := range debts {
		remaining += d.remaining
	}

	return domain.PayoffResult{
		Strategy:         strategy,
		TotalDebt:        roundTo2Decimals(totalDebt),
		TotalInterest:    roundTo2Decimals(totalInterest),
		Months:           month,
		Completed:        allRepaid(debts),
		RemainingBalance: roundTo2Decimals(remaining),
		Plan:             plan,
	}, nil
}

// betterPlan reports whether a beats b: a finished plan beats an unfinished
// one, then lower interest wins.
func betterPlan(a, b domain.PayoffResult) bool {
	if a.Completed != b.Completed {
		return a.Completed
	}
	if !a.Completed {
		return a.RemainingBalance < b.RemainingBalance
	}
	return a.TotalInterest < b.TotalInterest
}

func allRepaid(debts []*debtState) bool {
	for _, d := range debts {
		if d.remaining > DebtBalanceTolerance {
			return false
		}
	}
	return true
}
