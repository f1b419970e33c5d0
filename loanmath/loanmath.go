// Package loanmath solves the reducing-balance amortization relationship
// between principal, monthly installment (EMI), annual interest rate and
// tenure. Every function is pure and safe for concurrent use.
package loanmath

import (
	"fmt"
	"math"
)

const (
	// RateSearchLow and RateSearchHigh bound the rate solve, in percent per annum.
	RateSearchLow  = 0.0
	RateSearchHigh = 50.0

	// RateTolerance is the bracket width, in percentage points, at which the
	// rate bisection stops.
	RateTolerance = 0.01
)

// Mode names the unknown quantity a calculation solves for.
type Mode int

const (
	ModeEMI Mode = iota
	ModePrincipal
	ModeTenure
	ModeRate
)

var modeNames = [...]string{"emi", "principal", "tenure", "rate"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps a mode name back to its Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown solve mode %q", s)
}

// Failure classifies why a Result is not valid.
type Failure int

const (
	FailureNone Failure = iota
	FailureInvalidInput
	FailureDomain
	FailureNumeric
)

var failureNames = [...]string{"", "invalid_input", "domain_error", "numeric_degeneracy"}

func (f Failure) String() string {
	if f < 0 || int(f) >= len(failureNames) {
		return fmt.Sprintf("failure(%d)", int(f))
	}
	return failureNames[f]
}

// Input carries the four quantities and the one being solved for. The field
// named by Mode is ignored.
type Input struct {
	Mode              Mode
	Principal         float64
	EMI               float64
	AnnualRatePercent float64
	TenureMonths      float64
}

// Result is the outcome of a solve. When Valid is false only Mode, Failure
// and Reason are meaningful.
type Result struct {
	Mode              Mode
	Principal         float64
	EMI               float64
	AnnualRatePercent float64
	TenureMonths      float64

	TotalPayment        float64
	TotalInterest       float64
	PrincipalPercentage float64
	InterestPercentage  float64

	Valid   bool
	Failure Failure
	Reason  string
}

// Solve dispatches to the function matching in.Mode. It panics on a Mode
// outside the four defined ones.
func Solve(in Input) Result {
	switch in.Mode {
	case ModeEMI:
		return ComputeEMI(in.Principal, in.AnnualRatePercent, in.TenureMonths)
	case ModePrincipal:
		return ComputePrincipal(in.EMI, in.AnnualRatePercent, in.TenureMonths)
	case ModeTenure:
		return ComputeTenure(in.Principal, in.EMI, in.AnnualRatePercent)
	case ModeRate:
		return ComputeRate(in.Principal, in.EMI, in.TenureMonths)
	}
	panic(fmt.Sprintf("loanmath: undefined solve mode %d", int(in.Mode)))
}

// MonthlyRate converts a percent-per-annum rate to a fractional monthly rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / (12 * 100)
}

// ComputeEMI returns the fixed monthly installment that amortizes principal
// over tenureMonths at annualRatePercent.
func ComputeEMI(principal, annualRatePercent, tenureMonths float64) Result {
	if reason, ok := checkPositive("principal", principal); !ok {
		return invalid(ModeEMI, FailureInvalidInput, reason)
	}
	if reason, ok := checkRate(annualRatePercent); !ok {
		return invalid(ModeEMI, FailureInvalidInput, reason)
	}
	if reason, ok := checkPositive("tenure", tenureMonths); !ok {
		return invalid(ModeEMI, FailureInvalidInput, reason)
	}

	emi := installment(principal, MonthlyRate(annualRatePercent), tenureMonths)
	return breakdown(Result{
		Mode:              ModeEMI,
		Principal:         principal,
		EMI:               emi,
		AnnualRatePercent: annualRatePercent,
		TenureMonths:      tenureMonths,
	})
}

// ComputePrincipal returns the loan amount that an installment of emi repays
// over tenureMonths at annualRatePercent.
func ComputePrincipal(emi, annualRatePercent, tenureMonths float64) Result {
	if reason, ok := checkPositive("emi", emi); !ok {
		return invalid(ModePrincipal, FailureInvalidInput, reason)
	}
	if reason, ok := checkRate(annualRatePercent); !ok {
		return invalid(ModePrincipal, FailureInvalidInput, reason)
	}
	if reason, ok := checkPositive("tenure", tenureMonths); !ok {
		return invalid(ModePrincipal, FailureInvalidInput, reason)
	}

	r := MonthlyRate(annualRatePercent)
	var principal float64
	if r == 0 {
		principal = emi * tenureMonths
	} else {
		principal = emi * -math.Expm1(-tenureMonths*math.Log1p(r)) / r
	}

	return breakdown(Result{
		Mode:              ModePrincipal,
		Principal:         principal,
		EMI:               emi,
		AnnualRatePercent: annualRatePercent,
		TenureMonths:      tenureMonths,
	})
}

// ComputeTenure returns the number of monthly installments of emi needed to
// repay principal at annualRatePercent. The result is not rounded to a whole
// month. An emi that does not exceed the first month's interest never repays
// the loan and is reported as a domain failure.
func ComputeTenure(principal, emi, annualRatePercent float64) Result {
	if reason, ok := checkPositive("principal", principal); !ok {
		return invalid(ModeTenure, FailureInvalidInput, reason)
	}
	if reason, ok := checkPositive("emi", emi); !ok {
		return invalid(ModeTenure, FailureInvalidInput, reason)
	}
	if reason, ok := checkRate(annualRatePercent); !ok {
		return invalid(ModeTenure, FailureInvalidInput, reason)
	}

	r := MonthlyRate(annualRatePercent)
	var tenure float64
	if r == 0 {
		tenure = principal / emi
	} else {
		interest := principal * r
		if emi <= interest {
			return invalid(ModeTenure, FailureDomain, fmt.Sprintf(
				"emi %.2f does not exceed the first month's interest %.2f; the loan is never repaid",
				emi, interest))
		}
		tenure = -math.Log1p(-interest/emi) / math.Log1p(r)
	}

	return breakdown(Result{
		Mode:              ModeTenure,
		Principal:         principal,
		EMI:               emi,
		AnnualRatePercent: annualRatePercent,
		TenureMonths:      tenure,
	})
}

// ComputeRate finds the annual rate, in percent, at which principal is
// repaid by tenureMonths installments of emi. It bisects over
// [RateSearchLow, RateSearchHigh], relying on EMI being strictly increasing
// in rate.
func ComputeRate(principal, emi, tenureMonths float64) Result {
	if reason, ok := checkPositive("principal", principal); !ok {
		return invalid(ModeRate, FailureInvalidInput, reason)
	}
	if reason, ok := checkPositive("emi", emi); !ok {
		return invalid(ModeRate, FailureInvalidInput, reason)
	}
	if reason, ok := checkPositive("tenure", tenureMonths); !ok {
		return invalid(ModeRate, FailureInvalidInput, reason)
	}

	floor := installment(principal, MonthlyRate(RateSearchLow), tenureMonths)
	ceiling := installment(principal, MonthlyRate(RateSearchHigh), tenureMonths)
	if !isFinite(floor) || !isFinite(ceiling) {
		return invalid(ModeRate, FailureNumeric, "calculation overflowed")
	}
	if emi < floor {
		return invalid(ModeRate, FailureDomain, fmt.Sprintf(
			"emi %.2f is below the interest-free installment %.2f", emi, floor))
	}
	if emi > ceiling {
		return invalid(ModeRate, FailureDomain, fmt.Sprintf(
			"emi %.2f needs a rate above %.0f%% per annum", emi, RateSearchHigh))
	}

	low, high := RateSearchLow, RateSearchHigh
	for high-low > RateTolerance {
		mid := (low + high) / 2
		if installment(principal, MonthlyRate(mid), tenureMonths) > emi {
			high = mid
		} else {
			low = mid
		}
	}

	return breakdown(Result{
		Mode:              ModeRate,
		Principal:         principal,
		EMI:               emi,
		AnnualRatePercent: (low + high) / 2,
		TenureMonths:      tenureMonths,
	})
}

// installment is the direct EMI formula on a fractional monthly rate,
// written as P·r / (1 − (1+r)^−n). Expm1 and Log1p keep it exact for rates
// too small for 1+r to be represented.
func installment(principal, r, n float64) float64 {
	if r == 0 {
		return principal / n
	}
	return principal * r / -math.Expm1(-n*math.Log1p(r))
}

// breakdown fills the totals and percentages of a solved result and marks it
// valid, or invalid when any figure is non-finite.
func breakdown(res Result) Result {
	for _, v := range []float64{res.Principal, res.EMI, res.AnnualRatePercent, res.TenureMonths} {
		if !isFinite(v) {
			return invalid(res.Mode, FailureNumeric, "calculation overflowed")
		}
	}

	res.TotalPayment = res.EMI * res.TenureMonths
	if !isFinite(res.TotalPayment) || res.TotalPayment <= 0 {
		return invalid(res.Mode, FailureNumeric, "total payment is not a positive amount")
	}
	res.TotalInterest = res.TotalPayment - res.Principal
	res.PrincipalPercentage = 100 * res.Principal / res.TotalPayment
	res.InterestPercentage = 100 * res.TotalInterest / res.TotalPayment

	res.Valid = true
	res.Failure = FailureNone
	return res
}

func invalid(mode Mode, failure Failure, reason string) Result {
	return Result{Mode: mode, Failure: failure, Reason: reason}
}

func checkPositive(name string, v float64) (string, bool) {
	if !isFinite(v) {
		return name + " must be a finite number", false
	}
	if v <= 0 {
		return name + " must be greater than zero", false
	}
	return "", true
}

func checkRate(v float64) (string, bool) {
	if !isFinite(v) {
		return "rate must be a finite number", false
	}
	if v < 0 {
		return "rate must not be negative", false
	}
	return "", true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
