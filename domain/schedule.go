package domain

type ScheduleInput struct {
	Principal    float64 `json:"principal"`
	InterestRate float64 `json:"interest_rate"`
	TenureMonths int     `json:"tenure_months"`
}

type ScheduleEntry struct {
	Month            int     `json:"month"`
	Payment          float64 `json:"payment"`
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
	RemainingBalance float64 `json:"remaining_balance"`
}

type ScheduleResult struct {
	EMI           float64         `json:"emi"`
	TotalPayment  float64         `json:"total_payment"`
	TotalInterest float64         `json:"total_interest"`
	Entries       []ScheduleEntry `json:"entries"`
}
