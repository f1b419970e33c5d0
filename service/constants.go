package service

const (
	MaxLoanAmount     = 1_000_000_000.0 // one billion
	MaxInterestRate   = 1000.0          // percent per annum
	MaxTenureMonths   = 600             // 50 years
	MaxHistoryRecords = 500

	MaxDebtAmount        = 100_000_000.0
	MaxDebtsPerRequest   = 50
	MaxPayoffMonths      = 600
	DebtBalanceTolerance = 0.01 // balance under which a debt counts as repaid

	// Widest tenure range scanned by a term recommendation (10 years).
	MaxTenureRangeMonths = 120
)
