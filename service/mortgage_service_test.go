package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparta-mortgage/domain"
)

func TestMortgageService_Calculate(t *testing.T) {
	svc := NewMortgageService(discardLogger())

	result, err := svc.Calculate(standardInputs())
	require.NoError(t, err)
	assert.InDelta(t, 1438.92, result.MonthlyPayment, 0.01)
}

func TestMortgageService_Limits(t *testing.T) {
	svc := NewMortgageService(discardLogger())

	tests := []struct {
		name   string
		mutate func(*domain.LoanInputs)
	}{
		{"home price", func(in *domain.LoanInputs) { in.HomePrice = MaxHomePrice + 1 }},
		{"term", func(in *domain.LoanInputs) { in.TermYears = MaxTermYears + 1 }},
		{"rate", func(in *domain.LoanInputs) { in.AnnualInterestRatePercent = MaxInterestRate + 1 }},
		{"extra payment", func(in *domain.LoanInputs) { in.ExtraMonthlyPayment = MaxExtraPayment + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := standardInputs()
			tt.mutate(&in)

			_, err := svc.Calculate(in)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}

func TestMortgageService_RateForCreditScore(t *testing.T) {
	svc := NewMortgageService(discardLogger())

	rate, err := svc.RateForCreditScore("excellent")
	require.NoError(t, err)
	assert.Equal(t, 6.0, rate)

	rate, err = svc.RateForCreditScore(" Poor ")
	require.NoError(t, err)
	assert.Equal(t, 8.0, rate)

	_, err = svc.RateForCreditScore("legendary")
	assert.True(t, errors.Is(err, ErrUnknownCreditScore))
}

func TestMortgageService_OptionsAreCopies(t *testing.T) {
	svc := NewMortgageService(discardLogger())

	opts := svc.Options()
	require.Len(t, opts.CreditScores, 4)
	assert.Equal(t, []int{10, 15, 20, 25, 30}, opts.TermYears)

	opts.TermYears[0] = 99
	opts.CreditScores[0].Rate = 0
	assert.Equal(t, 10, LoanTermOptions[0])
	assert.Equal(t, 6.0, CreditScoreTiers[0].Rate)
}
