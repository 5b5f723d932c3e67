package domain

type TermComparisonInput struct {
	HomePrice                 float64 `json:"homePrice"`
	DownPaymentPercent        float64 `json:"downPaymentPercent"`
	AnnualInterestRatePercent float64 `json:"annualInterestRatePercent"`
	ExtraMonthlyPayment       float64 `json:"extraMonthlyPayment"`
	MaxMonthlyPayment         float64 `json:"maxMonthlyPayment"` // 0 disables the filter
	Preference                string  `json:"preference"`        // "minimize_interest", "minimize_payment", "balanced"
}

type TermOption struct {
	TermYears       int     `json:"termYears"`
	MonthlyPayment  float64 `json:"monthlyPayment"`
	TotalInterest   float64 `json:"totalInterest"`
	TotalAmountPaid float64 `json:"totalAmountPaid"`
	Score           float64 `json:"score"`
	Reason          string  `json:"reason"`
}

type TermComparisonResult struct {
	RecommendedTermYears int          `json:"recommendedTermYears"`
	Options              []TermOption `json:"options"`
}
