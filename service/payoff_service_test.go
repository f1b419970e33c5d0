package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"emi-engine/domain"
)

func sampleDebts() []domain.Debt {
	return []domain.Debt{
		{Name: "Phone", Balance: 1000, InterestRate: 6, MinimumPayment: 50},
		{Name: "Card", Balance: 5000, InterestRate: 24, MinimumPayment: 150},
	}
}

func TestPlanPayoff_Strategies(t *testing.T) {
	service := NewPayoffService(zap.NewNop())

	for _, strategy := range []string{StrategySnowball, StrategyAvalanche} {
		t.Run(strategy, func(t *testing.T) {
			result, err := service.PlanPayoff(context.Background(), domain.PayoffInput{
				Debts:         sampleDebts(),
				MonthlyBudget: 400,
				Strategy:      strategy,
			})
			require.NoError(t, err)

			assert.Equal(t, strategy, result.Strategy)
			assert.Equal(t, 6000.0, result.TotalDebt)
			assert.Equal(t, 18, result.Months)
			assert.True(t, result.Completed)
			assert.Zero(t, result.RemainingBalance)
			require.Len(t, result.Plan, result.Months)
			assert.Nil(t, result.Comparison)
			assert.NotEmpty(t, result.Explanation)

			paid := 0.0
			for _, month := range result.Plan {
				assert.LessOrEqual(t, month.TotalPaid, 400.0)
				paid += month.TotalPaid
			}
			assert.InDelta(t, result.TotalDebt+result.TotalInterest, paid, 0.5)

			last := result.Plan[len(result.Plan)-1]
			for _, p := range last.Payments {
				assert.Equal(t, 0.0, p.RemainingBalance)
			}
		})
	}
}

func TestPlanPayoff_SnowballClearsSmallestFirst(t *testing.T) {
	service := NewPayoffService(zap.NewNop())

	result, err := service.PlanPayoff(context.Background(), domain.PayoffInput{
		Debts:         sampleDebts(),
		MonthlyBudget: 400,
		Strategy:      StrategySnowball,
	})
	require.NoError(t, err)

	first := result.Plan[0].Payments
	require.Len(t, first, 2)
	assert.Equal(t, "Phone", first[0].DebtName)
	assert.Greater(t, first[0].Payment, 50.0)
}

func TestPlanPayoff_Compare(t *testing.T) {
	service := NewPayoffService(zap.NewNop())

	result, err := service.PlanPayoff(context.Background(), domain.PayoffInput{
		Debts:         sampleDebts(),
		MonthlyBudget: 400,
		Strategy:      StrategyCompare,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Comparison)

	c := result.Comparison
	assert.Equal(t, StrategyAvalanche, result.Strategy)
	assert.Less(t, c.Avalanche.TotalInterest, c.Snowball.TotalInterest)
	assert.InDelta(t, 1152.31, c.Snowball.TotalInterest, 0.01)
	assert.InDelta(t, 1001.61, c.Avalanche.TotalInterest, 0.01)
	assert.InDelta(t, 150.70, c.InterestSaved, 0.01)
	assert.Equal(t, 0, c.MonthsSaved)
	assert.Contains(t, result.Explanation, "Avalanche saves")
}

func TestPlanPayoff_Validation(t *testing.T) {
	service := NewPayoffService(zap.NewNop())

	tests := []struct {
		name  string
		input domain.PayoffInput
	}{
		{"no debts", domain.PayoffInput{MonthlyBudget: 100, Strategy: StrategySnowball}},
		{"no budget", domain.PayoffInput{Debts: sampleDebts(), Strategy: StrategySnowball}},
		{"unknown strategy", domain.PayoffInput{Debts: sampleDebts(), MonthlyBudget: 400, Strategy: "random"}},
		{"budget below minimums", domain.PayoffInput{Debts: sampleDebts(), MonthlyBudget: 150, Strategy: StrategySnowball}},
		{"duplicate names", domain.PayoffInput{
			Debts:         []domain.Debt{sampleDebts()[0], sampleDebts()[0]},
			MonthlyBudget: 400,
			Strategy:      StrategySnowball,
		}},
		{"budget only covers interest", domain.PayoffInput{
			Debts:         []domain.Debt{{Name: "Loan", Balance: 12000, InterestRate: 12, MinimumPayment: 120}},
			MonthlyBudget: 120,
			Strategy:      StrategySnowball,
		}},
		{"minimum below interest", domain.PayoffInput{
			Debts:         []domain.Debt{{Name: "Loan", Balance: 100000, InterestRate: 24, MinimumPayment: 100}},
			MonthlyBudget: 5000,
			Strategy:      StrategyAvalanche,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.PlanPayoff(context.Background(), tt.input)
			assert.Error(t, err)
		})
	}
}

func TestPlanPayoff_StopsAtMonthLimit(t *testing.T) {
	service := NewPayoffService(zap.NewNop())

	// 0.10 a month above the interest takes about 713 months to clear.
	result, err := service.PlanPayoff(context.Background(), domain.PayoffInput{
		Debts:         []domain.Debt{{Name: "Loan", Balance: 12000, InterestRate: 12, MinimumPayment: 120}},
		MonthlyBudget: 120.10,
		Strategy:      StrategySnowball,
	})
	require.NoError(t, err)

	assert.Equal(t, MaxPayoffMonths, result.Months)
	assert.False(t, result.Completed)
	assert.InDelta(t, 8094.17, result.RemainingBalance, 0.01)
	assert.Equal(t, result.RemainingBalance, result.Plan[len(result.Plan)-1].Payments[0].RemainingBalance)
	assert.Contains(t, result.Explanation, "still owed")
	assert.NotContains(t, result.Explanation, "all 12000.00 of debt is repaid")
}

func TestPlanPayoff_Cancelled(t *testing.T) {
	service := NewPayoffService(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.PlanPayoff(ctx, domain.PayoffInput{
		Debts:         sampleDebts(),
		MonthlyBudget: 400,
		Strategy:      StrategySnowball,
	})
	assert.ErrorIs(t, err, context.Canceled)
}
