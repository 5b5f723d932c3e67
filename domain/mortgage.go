package domain

type LoanInputs struct {
	HomePrice                 float64 `json:"homePrice"`
	DownPaymentPercent        float64 `json:"downPaymentPercent"`
	AnnualInterestRatePercent float64 `json:"annualInterestRatePercent"`
	TermYears                 int     `json:"termYears"`
	ExtraMonthlyPayment       float64 `json:"extraMonthlyPayment"`
}

// AmortizationPoint is one sampled year of a schedule.
type AmortizationPoint struct {
	PeriodIndex            int     `json:"periodIndex"`
	RemainingBalance       float64 `json:"remainingBalance"`
	CumulativeInterestPaid float64 `json:"cumulativeInterestPaid"`
}

type AcceleratedSummary struct {
	MonthsPaid               int     `json:"monthsPaid"`
	YearsPaid                int     `json:"yearsPaid"`
	TotalInterest            float64 `json:"totalInterest"`
	InterestSaved            float64 `json:"interestSaved"`
	TimeSavedMonths          int     `json:"timeSavedMonths"`
	TimeSavedYears           int     `json:"timeSavedYears"`
	TimeSavedRemainingMonths int     `json:"timeSavedRemainingMonths"`
}

// ChartPoint pairs the standard and accelerated schedules by year. The
// accelerated fields stay nil for years after the accelerated payoff.
type ChartPoint struct {
	Year             int      `json:"year"`
	StandardBalance  float64  `json:"standardBalance"`
	StandardInterest float64  `json:"standardInterest"`
	ExtraBalance     *float64 `json:"extraBalance,omitempty"`
	ExtraInterest    *float64 `json:"extraInterest,omitempty"`
}

type ScheduleResult struct {
	Principal               float64             `json:"principal"`
	MonthlyRate             float64             `json:"monthlyRate"`
	NumberOfPayments        int                 `json:"numberOfPayments"`
	MonthlyPayment          float64             `json:"monthlyPayment"`
	TotalInterest           float64             `json:"totalInterest"`
	TotalAmountPaid         float64             `json:"totalAmountPaid"`
	DownPaymentAmount       float64             `json:"downPaymentAmount"`
	YearlySeries            []AmortizationPoint `json:"yearlySeries"`
	AcceleratedSummary      *AcceleratedSummary `json:"acceleratedSummary,omitempty"`
	AcceleratedYearlySeries []AmortizationPoint `json:"acceleratedYearlySeries,omitempty"`
	Chart                   []ChartPoint        `json:"chart"`
	Degenerate              bool                `json:"degenerate,omitempty"`
}

type CreditScoreTier struct {
	Value string  `json:"value"`
	Label string  `json:"label"`
	Rate  float64 `json:"rate"`
}

type CalculatorOptions struct {
	CreditScores []CreditScoreTier `json:"creditScores"`
	TermYears    []int             `json:"termYears"`
}
