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
	PreferenceMinimizeInterest = "minimize_interest"
	PreferenceMinimizePayment  = "minimize_payment"
	PreferenceBalanced         = "balanced"

	maxAlternatives = 3
)

// scoreWeights split a 0-10 score between interest, payment and tenure.
type scoreWeights struct {
	interest, payment, tenure float64
}

var preferenceWeights = map[string]scoreWeights{
	PreferenceMinimizeInterest: {interest: 0.6, payment: 0.2, tenure: 0.2},
	PreferenceMinimizePayment:  {interest: 0.2, payment: 0.6, tenure: 0.2},
	PreferenceBalanced:         {interest: 0.4, payment: 0.4, tenure: 0.2},
}

type TermRecommendationService struct {
	loanService *LoanService
	logger      *zap.Logger
}

func NewTermRecommendationService(loanService *LoanService, logger *zap.Logger) *TermRecommendationService {
	return &TermRecommendationService{
		loanService: loanService,
		logger:      logger.Named("term_recommendation"),
	}
}

// RecommendTerm evaluates every whole-month tenure in the requested range and
// ranks the affordable ones by the caller's preference.
func (s *TermRecommendationService) RecommendTerm(
	ctx context.Context,
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {

	if err := validateTermInput(input); err != nil {
		return domain.TermRecommendationResult{}, err
	}
	weights := preferenceWeights[input.Preference]

	recommendations := []domain.TermRecommendation{}
	for tenure := input.MinTenureMonths; tenure <= input.MaxTenureMonths; tenure++ {
		if err := ctx.Err(); err != nil {
			return domain.TermRecommendationResult{}, err
		}

		result, err := s.loanService.Solve(domain.LoanInput{
			Mode:         loanmath.ModeEMI.String(),
			Principal:    input.Principal,
			InterestRate: input.InterestRate,
			TenureMonths: float64(tenure),
		})
		if err != nil {
			s.logger.Warn("skipping tenure", zap.Int("tenure", tenure), zap.Error(err))
			continue
		}
		if result.EMI > input.MaxMonthlyPayment {
			continue
		}

		recommendations = append(recommendations, domain.TermRecommendation{
			TenureMonths:  tenure,
			EMI:           result.EMI,
			TotalInterest: result.TotalInterest,
			Reason:        preferenceReason(input.Preference),
		})
	}

	bounds := interestBounds(recommendations)
	for i := range recommendations {
		recommendations[i].Score = score(recommendations[i], input, bounds, weights)
	}

	if len(recommendations) == 0 {
		return domain.TermRecommendationResult{}, errors.New("no tenure in range keeps the installment within the maximum monthly payment")
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	top := recommendations[0]
	end := min(len(recommendations), 1+maxAlternatives)
	recommendations[0].Reason = explainRecommendation(input, top, recommendations[1:end])

	return domain.TermRecommendationResult{
		RecommendedTenure: top.TenureMonths,
		Recommendations:   recommendations,
	}, nil
}

func validateTermInput(input domain.TermRecommendationInput) error {
	switch {
	case input.Principal <= 0:
		return errors.New("invalid principal")
	case input.Principal > MaxLoanAmount:
		return fmt.Errorf("principal exceeds the maximum of %.2f", MaxLoanAmount)
	case input.InterestRate < 0:
		return errors.New("invalid interest rate")
	case input.InterestRate > MaxInterestRate:
		return fmt.Errorf("interest rate exceeds the maximum of %.2f%%", MaxInterestRate)
	case input.MinTenureMonths <= 0 || input.MaxTenureMonths <= 0:
		return errors.New("invalid tenure range")
	case input.MinTenureMonths > input.MaxTenureMonths:
		return errors.New("minimum tenure is greater than maximum tenure")
	case input.MaxTenureMonths > MaxTenureMonths:
		return fmt.Errorf("maximum tenure exceeds the limit of %d months", MaxTenureMonths)
	case input.MaxTenureMonths-input.MinTenureMonths > MaxTenureRangeMonths:
		return fmt.Errorf("tenure range exceeds %d months", MaxTenureRangeMonths)
	case input.MaxMonthlyPayment <= 0:
		return errors.New("invalid maximum monthly payment")
	}
	if _, ok := preferenceWeights[input.Preference]; !ok {
		return fmt.Errorf("unknown preference %q", input.Preference)
	}
	return nil
}

type interestRange struct {
	min, max float64
}

func interestBounds(recs []domain.TermRecommendation) interestRange {
	if len(recs) == 0 {
		return interestRange{}
	}
	b := interestRange{min: recs[0].TotalInterest, max: recs[0].TotalInterest}
	for _, rec := range recs[1:] {
		b.min = math.Min(b.min, rec.TotalInterest)
		b.max = math.Max(b.max, rec.TotalInterest)
	}
	return b
}

// score rates a tenure from 0 to 10. Interest is normalized across the
// affordable candidates, payment between the range's cheapest interest-free
// installment and the payment cap.
func score(
	rec domain.TermRecommendation,
	input domain.TermRecommendationInput,
	interest interestRange,
	w scoreWeights,
) float64 {
	floorPayment := input.Principal / float64(input.MaxTenureMonths)

	var interestScore, paymentScore, tenureScore float64
	if span := interest.max - interest.min; span > 0 {
		interestScore = 10 * (1 - (rec.TotalInterest-interest.min)/span)
	}
	if span := input.MaxMonthlyPayment - floorPayment; span > 0 {
		paymentScore = 10 * (1 - (rec.EMI-floorPayment)/span)
	}
	if span := input.MaxTenureMonths - input.MinTenureMonths; span > 0 {
		tenureScore = 10 * (1 - float64(rec.TenureMonths-input.MinTenureMonths)/float64(span))
	}

	total := w.interest*interestScore + w.payment*paymentScore + w.tenure*tenureScore
	return roundTo2Decimals(math.Max(0, math.Min(10, total)))
}
