package domain

import "time"

// LoanInput is a calculation request. Mode names the unknown ("emi",
// "principal", "tenure" or "rate"); the matching field is ignored.
type LoanInput struct {
	Mode         string  `json:"mode"`
	Principal    float64 `json:"principal"`
	EMI          float64 `json:"emi"`
	InterestRate float64 `json:"interest_rate"`
	TenureMonths float64 `json:"tenure_months"`
}

type LoanResult struct {
	Mode                string  `json:"mode"`
	Principal           float64 `json:"principal"`
	EMI                 float64 `json:"emi"`
	InterestRate        float64 `json:"interest_rate"`
	TenureMonths        float64 `json:"tenure_months"`
	TotalPayment        float64 `json:"total_payment"`
	TotalInterest       float64 `json:"total_interest"`
	PrincipalPercentage float64 `json:"principal_percentage"`
	InterestPercentage  float64 `json:"interest_percentage"`
	Valid               bool    `json:"valid"`
	Failure             string  `json:"failure,omitempty"`
	Reason              string  `json:"reason,omitempty"`
}

// CalculationRecord is a stored, successfully solved calculation.
type CalculationRecord struct {
	ID        string     `json:"id"`
	Input     LoanInput  `json:"input"`
	Result    LoanResult `json:"result"`
	CreatedAt time.Time  `json:"created_at"`
}
