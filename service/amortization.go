package service

import (
	"errors"
	"fmt"
	"math"

	"sparta-mortgage/domain"
)

// ErrInvalidInput is returned by ComputeAmortization when a loan input is out
// of range. The wrapped message names the offending field.
var ErrInvalidInput = errors.New("invalid loan input")

const (
	monthsPerYear = 12

	// maxScheduleYears bounds the month loop; service limits are far tighter.
	maxScheduleYears = 1_000
)

// MonthlyPayment returns the fixed payment of a fully amortizing loan. A
// non-finite formula result is clamped to 0; use monthlyPayment to learn
// whether that happened.
func MonthlyPayment(principal, monthlyRate float64, numberOfPayments int) float64 {
	payment, _ := monthlyPayment(principal, monthlyRate, numberOfPayments)
	return payment
}

func monthlyPayment(principal, monthlyRate float64, numberOfPayments int) (float64, bool) {
	if principal == 0 {
		return 0, false
	}

	n := float64(numberOfPayments)

	var payment float64
	if monthlyRate == 0 {
		payment = principal / n
	} else {
		factor := math.Pow(1+monthlyRate, n)
		payment = principal * (monthlyRate * factor) / (factor - 1)
	}

	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return 0, true
	}
	return payment, false
}

// standardSchedule is the full-term simulation at the fixed payment.
type standardSchedule struct {
	series        []domain.AmortizationPoint
	totalInterest float64
}

func buildStandardSchedule(
	principal, monthlyRate float64,
	numberOfPayments int,
	payment float64,
) standardSchedule {
	if principal == 0 {
		return standardSchedule{
			series: []domain.AmortizationPoint{{PeriodIndex: 1}},
		}
	}

	series := make([]domain.AmortizationPoint, 0, yearsFor(numberOfPayments))
	balance := principal
	totalInterest := 0.0

	for month := 1; month <= numberOfPayments; month++ {
		interest := balance * monthlyRate
		balance -= payment - interest
		totalInterest += interest

		if month%monthsPerYear == 0 || month == numberOfPayments {
			series = append(series, domain.AmortizationPoint{
				PeriodIndex:            yearsFor(month),
				RemainingBalance:       finiteOrZero(math.Max(0, balance)),
				CumulativeInterestPaid: finiteOrZero(totalInterest),
			})
		}
	}

	return standardSchedule{series: series, totalInterest: totalInterest}
}

// acceleratedSchedule is the simulation with a constant extra principal
// payment; it stops at payoff or after numberOfPayments months.
type acceleratedSchedule struct {
	series        []domain.AmortizationPoint
	totalInterest float64
	monthsPaid    int
}

func buildAcceleratedSchedule(
	principal, monthlyRate float64,
	numberOfPayments int,
	payment, extra float64,
) acceleratedSchedule {
	var acc acceleratedSchedule
	balance := principal

	for month := 1; month <= numberOfPayments; month++ {
		if balance <= 0 {
			break
		}

		interest := balance * monthlyRate
		balance -= (payment - interest) + extra
		acc.totalInterest += interest
		acc.monthsPaid = month

		if month%monthsPerYear == 0 || balance <= 0 {
			acc.series = append(acc.series, domain.AmortizationPoint{
				PeriodIndex:            yearsFor(month),
				RemainingBalance:       finiteOrZero(math.Max(0, balance)),
				CumulativeInterestPaid: finiteOrZero(acc.totalInterest),
			})
		}
	}

	return acc
}

// ComputeAmortization validates the inputs and assembles the standard and,
// when an extra payment is requested, accelerated schedules. It holds no
// state and is safe for concurrent use.
func ComputeAmortization(inputs domain.LoanInputs) (domain.ScheduleResult, error) {
	if err := validateLoanInputs(inputs); err != nil {
		return domain.ScheduleResult{}, err
	}

	downPayment := inputs.HomePrice * inputs.DownPaymentPercent / 100
	principal := math.Max(0, inputs.HomePrice*(1-inputs.DownPaymentPercent/100))
	monthlyRate := inputs.AnnualInterestRatePercent / 100 / monthsPerYear
	numberOfPayments := inputs.TermYears * monthsPerYear

	payment, degenerate := monthlyPayment(principal, monthlyRate, numberOfPayments)
	standard := buildStandardSchedule(principal, monthlyRate, numberOfPayments, payment)

	result := domain.ScheduleResult{
		Principal:         principal,
		MonthlyRate:       monthlyRate,
		NumberOfPayments:  numberOfPayments,
		MonthlyPayment:    payment,
		TotalInterest:     finiteOrZero(standard.totalInterest),
		TotalAmountPaid:   payment * float64(numberOfPayments),
		DownPaymentAmount: downPayment,
		YearlySeries:      standard.series,
		Degenerate:        degenerate,
	}

	if inputs.ExtraMonthlyPayment > 0 {
		accelerated := buildAcceleratedSchedule(
			principal, monthlyRate, numberOfPayments, payment, inputs.ExtraMonthlyPayment,
		)
		timeSaved := numberOfPayments - accelerated.monthsPaid

		result.AcceleratedSummary = &domain.AcceleratedSummary{
			MonthsPaid:               accelerated.monthsPaid,
			YearsPaid:                yearsFor(accelerated.monthsPaid),
			TotalInterest:            finiteOrZero(accelerated.totalInterest),
			InterestSaved:            result.TotalInterest - finiteOrZero(accelerated.totalInterest),
			TimeSavedMonths:          timeSaved,
			TimeSavedYears:           timeSaved / monthsPerYear,
			TimeSavedRemainingMonths: timeSaved % monthsPerYear,
		}
		result.AcceleratedYearlySeries = accelerated.series
	}

	result.Chart = mergeChart(result.YearlySeries, result.AcceleratedYearlySeries)
	return result, nil
}

// mergeChart aligns the accelerated series onto the standard one by year.
func mergeChart(standard, accelerated []domain.AmortizationPoint) []domain.ChartPoint {
	byYear := make(map[int]domain.AmortizationPoint, len(accelerated))
	for _, p := range accelerated {
		byYear[p.PeriodIndex] = p
	}

	chart := make([]domain.ChartPoint, 0, len(standard))
	for _, p := range standard {
		point := domain.ChartPoint{
			Year:             p.PeriodIndex,
			StandardBalance:  p.RemainingBalance,
			StandardInterest: p.CumulativeInterestPaid,
		}
		if a, ok := byYear[p.PeriodIndex]; ok {
			balance, interest := a.RemainingBalance, a.CumulativeInterestPaid
			point.ExtraBalance = &balance
			point.ExtraInterest = &interest
		}
		chart = append(chart, point)
	}
	return chart
}

func validateLoanInputs(in domain.LoanInputs) error {
	switch {
	case !isFinite(in.HomePrice) || in.HomePrice < 0:
		return fmt.Errorf("%w: home price must be a non-negative number", ErrInvalidInput)
	case !isFinite(in.DownPaymentPercent) || in.DownPaymentPercent < 0 || in.DownPaymentPercent > 100:
		return fmt.Errorf("%w: down payment percent must be between 0 and 100", ErrInvalidInput)
	case !isFinite(in.AnnualInterestRatePercent) || in.AnnualInterestRatePercent < 0:
		return fmt.Errorf("%w: interest rate must be a non-negative number", ErrInvalidInput)
	case in.TermYears <= 0:
		return fmt.Errorf("%w: term must be at least one year", ErrInvalidInput)
	case in.TermYears > maxScheduleYears:
		return fmt.Errorf("%w: term must be at most %d years", ErrInvalidInput, maxScheduleYears)
	case !isFinite(in.ExtraMonthlyPayment) || in.ExtraMonthlyPayment < 0:
		return fmt.Errorf("%w: extra monthly payment must be a non-negative number", ErrInvalidInput)
	}
	return nil
}

// yearsFor is ceil(months/12).
func yearsFor(months int) int {
	return (months + monthsPerYear - 1) / monthsPerYear
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteOrZero(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}
