package domain

type TermRecommendationInput struct {
	Principal         float64 `json:"principal"`
	InterestRate      float64 `json:"interest_rate"`
	MinTenureMonths   int     `json:"min_tenure_months"`
	MaxTenureMonths   int     `json:"max_tenure_months"`
	MaxMonthlyPayment float64 `json:"max_monthly_payment"`
	Preference        string  `json:"preference"` // "minimize_interest", "minimize_payment", "balanced"
}

type TermRecommendation struct {
	TenureMonths  int     `json:"tenure_months"`
	EMI           float64 `json:"emi"`
	TotalInterest float64 `json:"total_interest"`
	Score         float64 `json:"score"`
	Reason        string  `json:"reason"`
}

type TermRecommendationResult struct {
	RecommendedTenure int                  `json:"recommended_tenure"`
	Recommendations   []TermRecommendation `json:"recommendations"`
}
