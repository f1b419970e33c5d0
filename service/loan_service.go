package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"emi-engine/domain"
	"emi-engine/loanmath"
	"emi-engine/repository"
)

type LoanService struct {
	repo   repository.LoanRepository
	cache  repository.CacheRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewLoanService creates a new LoanService with the given repository and cache.
func NewLoanService(
	repo repository.LoanRepository,
	cache repository.CacheRepository,
	logger *zap.Logger,
) *LoanService {
	return &LoanService{
		repo:   repo,
		cache:  cache,
		logger: logger.Named("loan_service"),
		now:    time.Now,
	}
}

// CalculateLoan solves the input for its unknown. Valid results are cached
// and recorded in the history; neither step can fail the calculation.
func (s *LoanService) CalculateLoan(
	ctx context.Context,
	input domain.LoanInput,
) (domain.LoanResult, error) {

	mode, err := loanmath.ParseMode(input.Mode)
	if err != nil {
		return domain.LoanResult{}, err
	}
	input = normalize(mode, input)

	key := cacheKey(input)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var result domain.LoanResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			s.logger.Debug("cache hit", zap.String("key", key))
			return result, nil
		}
		s.logger.Warn("discarding unreadable cache entry", zap.String("key", key))
	}

	result, err := s.Solve(input)
	if err != nil {
		return result, err
	}

	if encoded, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, string(encoded)); err != nil {
			s.logger.Warn("failed to cache loan calculation", zap.Error(err))
		}
	}

	record := domain.CalculationRecord{
		ID:        uuid.NewString(),
		Input:     input,
		Result:    result,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Warn("failed to save loan calculation", zap.Error(err))
	}

	return result, nil
}

// Solve checks the service limits and runs the calculation without touching
// the cache or the history.
func (s *LoanService) Solve(input domain.LoanInput) (domain.LoanResult, error) {
	mode, err := loanmath.ParseMode(input.Mode)
	if err != nil {
		return domain.LoanResult{}, err
	}
	if err := checkLimits(mode, input); err != nil {
		return domain.LoanResult{}, err
	}

	res := loanmath.Solve(loanmath.Input{
		Mode:              mode,
		Principal:         input.Principal,
		EMI:               input.EMI,
		AnnualRatePercent: input.InterestRate,
		TenureMonths:      input.TenureMonths,
	})
	if !res.Valid {
		return toLoanResult(res), &CalculationError{Failure: res.Failure, Reason: res.Reason}
	}
	return toLoanResult(res), nil
}

// History returns the most recent calculations, newest first.
func (s *LoanService) History(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	if limit <= 0 || limit > MaxHistoryRecords {
		limit = MaxHistoryRecords
	}
	records, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list calculation history: %w", err)
	}
	return records, nil
}

func checkLimits(mode loanmath.Mode, input domain.LoanInput) error {
	if mode != loanmath.ModePrincipal && input.Principal > MaxLoanAmount {
		return fmt.Errorf("principal exceeds the maximum of %.2f", MaxLoanAmount)
	}
	if mode != loanmath.ModeRate && input.InterestRate > MaxInterestRate {
		return fmt.Errorf("interest rate exceeds the maximum of %.2f%%", MaxInterestRate)
	}
	if mode != loanmath.ModeTenure && input.TenureMonths > MaxTenureMonths {
		return fmt.Errorf("tenure exceeds the maximum of %d months", MaxTenureMonths)
	}
	return nil
}

// normalize zeroes the field being solved for so equivalent requests share
// a cache key.
func normalize(mode loanmath.Mode, input domain.LoanInput) domain.LoanInput {
	input.Mode = mode.String()
	switch mode {
	case loanmath.ModeEMI:
		input.EMI = 0
	case loanmath.ModePrincipal:
		input.Principal = 0
	case loanmath.ModeTenure:
		input.TenureMonths = 0
	case loanmath.ModeRate:
		input.InterestRate = 0
	}
	return input
}

func cacheKey(input domain.LoanInput) string {
	canonical := fmt.Sprintf("%s|%g|%g|%g|%g",
		input.Mode, input.Principal, input.EMI, input.InterestRate, input.TenureMonths)
	return strconv.FormatUint(xxhash.Sum64String(canonical), 16)
}

func toLoanResult(res loanmath.Result) domain.LoanResult {
	if !res.Valid {
		return domain.LoanResult{
			Mode:    res.Mode.String(),
			Failure: res.Failure.String(),
			Reason:  res.Reason,
		}
	}
	return domain.LoanResult{
		Mode:                res.Mode.String(),
		Principal:           roundTo2Decimals(res.Principal),
		EMI:                 roundTo2Decimals(res.EMI),
		InterestRate:        roundTo2Decimals(res.AnnualRatePercent),
		TenureMonths:        roundTo2Decimals(res.TenureMonths),
		TotalPayment:        roundTo2Decimals(res.TotalPayment),
		TotalInterest:       roundTo2Decimals(res.TotalInterest),
		PrincipalPercentage: roundTo2Decimals(res.PrincipalPercentage),
		InterestPercentage:  roundTo2Decimals(res.InterestPercentage),
		Valid:               true,
	}
}
