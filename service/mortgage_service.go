package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"sparta-mortgage/domain"
)

var ErrUnknownCreditScore = errors.New("unknown credit score tier")

type MortgageService struct {
	logger *slog.Logger
}

// NewMortgageService creates a MortgageService that logs degenerate results
// through the given logger.
func NewMortgageService(logger *slog.Logger) *MortgageService {
	return &MortgageService{logger: logger}
}

// Calculate applies the service limits and runs the amortization engine.
func (s *MortgageService) Calculate(input domain.LoanInputs) (domain.ScheduleResult, error) {
	if input.HomePrice > MaxHomePrice {
		return domain.ScheduleResult{}, fmt.Errorf("%w: home price exceeds the maximum of $%.2f", ErrInvalidInput, MaxHomePrice)
	}
	if input.TermYears > MaxTermYears {
		return domain.ScheduleResult{}, fmt.Errorf("%w: term exceeds the maximum of %d years", ErrInvalidInput, MaxTermYears)
	}
	if input.AnnualInterestRatePercent > MaxInterestRate {
		return domain.ScheduleResult{}, fmt.Errorf("%w: interest rate exceeds the maximum of %.2f%%", ErrInvalidInput, MaxInterestRate)
	}
	if input.ExtraMonthlyPayment > MaxExtraPayment {
		return domain.ScheduleResult{}, fmt.Errorf("%w: extra payment exceeds the maximum of $%.2f", ErrInvalidInput, MaxExtraPayment)
	}

	result, err := ComputeAmortization(input)
	if err != nil {
		return domain.ScheduleResult{}, err
	}

	if result.Degenerate {
		s.logger.Warn("monthly payment formula was not finite, clamped to zero",
			"principal", result.Principal,
			"monthly_rate", result.MonthlyRate,
			"payments", result.NumberOfPayments,
		)
	}
	if acc := result.AcceleratedSummary; acc != nil && acc.InterestSaved < 0 {
		s.logger.Warn("accelerated schedule paid more interest than the standard one",
			"interest_saved", acc.InterestSaved,
			"extra_payment", input.ExtraMonthlyPayment,
		)
	}

	return result, nil
}

// RateForCreditScore returns the annual rate preset for a credit score tier.
func (s *MortgageService) RateForCreditScore(tier string) (float64, error) {
	tier = strings.ToLower(strings.TrimSpace(tier))
	for _, t := range CreditScoreTiers {
		if t.Value == tier {
			return t.Rate, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCreditScore, tier)
}

func (s *MortgageService) Options() domain.CalculatorOptions {
	tiers := make([]domain.CreditScoreTier, len(CreditScoreTiers))
	copy(tiers, CreditScoreTiers)
	terms := make([]int, len(LoanTermOptions))
	copy(terms, LoanTermOptions)

	return domain.CalculatorOptions{CreditScores: tiers, TermYears: terms}
}
