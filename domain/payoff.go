package domain

// Debt is one outstanding balance in a payoff plan, typically an unpaid
// backlog entry or a running loan.
type Debt struct {
	Name           string  `json:"name"`
	Balance        float64 `json:"balance"`
	InterestRate   float64 `json:"interest_rate"`
	MinimumPayment float64 `json:"minimum_payment"`
}

type PayoffInput struct {
	Debts         []Debt  `json:"debts"`
	MonthlyBudget float64 `json:"monthly_budget"`
	Strategy      string  `json:"strategy"` // "snowball", "avalanche", "compare"
}

type DebtPayment struct {
	DebtName         string  `json:"debt_name"`
	Payment          float64 `json:"payment"`
	RemainingBalance float64 `json:"remaining_balance"`
}

type PayoffMonth struct {
	Month     int           `json:"month"`
	Payments  []DebtPayment `json:"payments"`
	TotalPaid float64       `json:"total_paid"`
}

type StrategySummary struct {
	TotalInterest float64 `json:"total_interest"`
	Months        int     `json:"months"`
}

type PayoffComparison struct {
	Snowball      StrategySummary `json:"snowball"`
	Avalanche     StrategySummary `json:"avalanche"`
	InterestSaved float64         `json:"interest_saved"`
	MonthsSaved   int             `json:"months_saved"`
}

// PayoffResult is a simulated plan. Completed is false when the simulation
// stopped at the month limit with RemainingBalance still owed.
type PayoffResult struct {
	Strategy         string            `json:"strategy"`
	TotalDebt        float64           `json:"total_debt"`
	TotalInterest    float64           `json:"total_interest"`
	Months           int               `json:"months"`
	Completed        bool              `json:"completed"`
	RemainingBalance float64           `json:"remaining_balance"`
	Plan             []PayoffMonth     `json:"plan"`
	Comparison       *PayoffComparison `json:"comparison,omitempty"`
	Explanation      string            `json:"explanation,omitempty"`
}
