package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"sparta-mortgage/domain"
)

var ErrNoEligibleTerm = errors.New("no term option fits the maximum monthly payment")

// roundTo2Decimals rounds a score to 2 decimals.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

type TermComparisonService struct {
	mortgage *MortgageService
	logger   *slog.Logger
}

func NewTermComparisonService(mortgage *MortgageService, logger *slog.Logger) *TermComparisonService {
	return &TermComparisonService{mortgage: mortgage, logger: logger}
}

// CompareTerms evaluates every conventional term option and ranks them by
// the requested preference.
func (s *TermComparisonService) CompareTerms(
	input domain.TermComparisonInput,
) (domain.TermComparisonResult, error) {
	preferences := map[string]bool{
		"minimize_interest": true,
		"minimize_payment":  true,
		"balanced":          true,
	}
	if !preferences[input.Preference] {
		return domain.TermComparisonResult{}, fmt.Errorf("%w: unknown preference %q", ErrInvalidInput, input.Preference)
	}
	if input.MaxMonthlyPayment < 0 || !isFinite(input.MaxMonthlyPayment) {
		return domain.TermComparisonResult{}, fmt.Errorf("%w: maximum monthly payment must be a non-negative number", ErrInvalidInput)
	}

	options := make([]domain.TermOption, 0, len(LoanTermOptions))
	for _, term := range LoanTermOptions {
		result, err := s.mortgage.Calculate(domain.LoanInputs{
			HomePrice:                 input.HomePrice,
			DownPaymentPercent:        input.DownPaymentPercent,
			AnnualInterestRatePercent: input.AnnualInterestRatePercent,
			TermYears:                 term,
			ExtraMonthlyPayment:       input.ExtraMonthlyPayment,
		})
		if err != nil {
			// Inputs other than the term are shared, so one failure means all fail.
			return domain.TermComparisonResult{}, err
		}

		if input.MaxMonthlyPayment > 0 && result.MonthlyPayment > input.MaxMonthlyPayment {
			s.logger.Debug("term option filtered by maximum payment",
				"term_years", term, "monthly_payment", result.MonthlyPayment)
			continue
		}

		// With an extra payment both totals describe the accelerated payoff.
		totalInterest, totalPaid := result.TotalInterest, result.TotalAmountPaid
		if acc := result.AcceleratedSummary; acc != nil {
			totalInterest = acc.TotalInterest
			totalPaid = result.Principal + acc.TotalInterest
		}

		options = append(options, domain.TermOption{
			TermYears:       term,
			MonthlyPayment:  result.MonthlyPayment,
			TotalInterest:   totalInterest,
			TotalAmountPaid: totalPaid,
			Reason:          reasonFor(input.Preference),
		})
	}

	if len(options) == 0 {
		return domain.TermComparisonResult{}, ErrNoEligibleTerm
	}

	scoreOptions(options, input.Preference)

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Score > options[j].Score
	})

	return domain.TermComparisonResult{
		RecommendedTermYears: options[0].TermYears,
		Options:              options,
	}, nil
}

// scoreOptions normalizes interest, payment and term to 0-10 across the
// surviving options and weights them by preference.
func scoreOptions(options []domain.TermOption, preference string) {
	minInterest, maxInterest := math.Inf(1), math.Inf(-1)
	minPayment, maxPayment := math.Inf(1), math.Inf(-1)
	minTerm, maxTerm := math.MaxInt, math.MinInt
	for _, o := range options {
		minInterest = math.Min(minInterest, o.TotalInterest)
		maxInterest = math.Max(maxInterest, o.TotalInterest)
		minPayment = math.Min(minPayment, o.MonthlyPayment)
		maxPayment = math.Max(maxPayment, o.MonthlyPayment)
		minTerm = min(minTerm, o.TermYears)
		maxTerm = max(maxTerm, o.TermYears)
	}

	for i := range options {
		o := &options[i]
		interestScore := normalizedScore(o.TotalInterest, minInterest, maxInterest)
		paymentScore := normalizedScore(o.MonthlyPayment, minPayment, maxPayment)
		termScore := normalizedScore(float64(o.TermYears), float64(minTerm), float64(maxTerm))

		var score float64
		switch preference {
		case "minimize_interest":
			score = 0.6*interestScore + 0.2*paymentScore + 0.2*termScore
		case "minimize_payment":
			score = 0.2*interestScore + 0.6*paymentScore + 0.2*termScore
		case "balanced":
			score = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
		}
		o.Score = roundTo2Decimals(score)
	}
}

// normalizedScore maps lo..hi to 10..0; a flat range scores 10.
func normalizedScore(v, lo, hi float64) float64 {
	if hi-lo <= 0 {
		return 10
	}
	return 10 * (1 - (v-lo)/(hi-lo))
}

func reasonFor(preference string) string {
	switch preference {
	case "minimize_interest":
		return "Term optimized to minimize total interest paid"
	case "minimize_payment":
		return "Term optimized to minimize the monthly payment"
	case "balanced":
		return "Balance between monthly payment and total cost"
	}
	return "Recommendation based on the provided parameters"
}
