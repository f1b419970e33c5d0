package service

import (
	"fmt"
	"strings"

	"emi-engine/domain"
)

func preferenceReason(preference string) string {
	switch preference {
	case PreferenceMinimizeInterest:
		return "Tenure chosen to keep the total interest cost low"
	case PreferenceMinimizePayment:
		return "Tenure chosen to keep the monthly installment low"
	case PreferenceBalanced:
		return "Balance between monthly installment and total cost"
	}
	return "Recommendation based on the supplied parameters"
}

func explainRecommendation(
	input domain.TermRecommendationInput,
	top domain.TermRecommendation,
	alternatives []domain.TermRecommendation,
) string {
	var b strings.Builder

	switch input.Preference {
	case PreferenceMinimizeInterest:
		fmt.Fprintf(&b, "A %d-month tenure keeps the total interest at %.2f with an installment of %.2f.",
			top.TenureMonths, top.TotalInterest, top.EMI)
	case PreferenceMinimizePayment:
		fmt.Fprintf(&b, "A %d-month tenure brings the installment down to %.2f, for %.2f of total interest.",
			top.TenureMonths, top.EMI, top.TotalInterest)
	default:
		fmt.Fprintf(&b, "A %d-month tenure balances an installment of %.2f against %.2f of total interest.",
			top.TenureMonths, top.EMI, top.TotalInterest)
	}

	if len(alternatives) > 0 {
		b.WriteString(" Alternatives:")
		for i, alt := range alternatives {
			if i > 0 {
				b.WriteString(";")
			}
			fmt.Fprintf(&b, " %d months at %.2f/month (%.2f interest)",
				alt.TenureMonths, alt.EMI, alt.TotalInterest)
		}
		b.WriteString(".")
	}
	return b.String()
}

func strategyName(strategy string) string {
	if strategy == StrategyAvalanche {
		return "Avalanche"
	}
	return "Snowball"
}

func explainPayoff(result domain.PayoffResult) string {
	var b strings.Builder

	if result.Completed {
		fmt.Fprintf(&b, "With the %s strategy all %.2f of debt is repaid in %d months (%.1f years), paying %.2f in interest.",
			strategyName(result.Strategy), result.TotalDebt, result.Months,
			float64(result.Months)/12, result.TotalInterest)
	} else {
		fmt.Fprintf(&b, "With the %s strategy %.2f of the %.2f debt is still owed after %d months (%.1f years), having paid %.2f in interest. A larger monthly budget is needed to finish.",
			strategyName(result.Strategy), result.RemainingBalance, result.TotalDebt, result.Months,
			float64(result.Months)/12, result.TotalInterest)
	}

	if result.Strategy == StrategyAvalanche {
		b.WriteString(" Surplus goes to the highest-rate debt first, which minimizes interest.")
	} else {
		b.WriteString(" Surplus goes to the smallest balance first, so debts disappear sooner.")
	}

	if c := result.Comparison; c != nil {
		fmt.Fprintf(&b, " Snowball costs %.2f over %d months; avalanche costs %.2f over %d months.",
			c.Snowball.TotalInterest, c.Snowball.Months,
			c.Avalanche.TotalInterest, c.Avalanche.Months)
		if c.InterestSaved > 0 {
			fmt.Fprintf(&b, " Avalanche saves %.2f.", c.InterestSaved)
		}
	}
	return b.String()
}
