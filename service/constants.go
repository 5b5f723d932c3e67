package service

import (
	"time"

	"sparta-mortgage/domain"
)

const (
	MaxHomePrice    = 1_000_000_000.0 // 1 billion
	MaxTermYears    = 50
	MaxExtraPayment = 10_000_000.0
	MaxInterestRate = 100.0 // percent per year

	// Limits for chat requests
	DefaultChatHistoryLimit = 20
	MaxChatMessageLength    = 4000
	ChatMaxTokens           = 500
	ChatTemperature         = 0.7
	ProbeMaxTokens          = 50

	LeadPublishTimeout = 5 * time.Second
)

// CreditScoreTiers are the rate presets offered next to the calculator.
var CreditScoreTiers = []domain.CreditScoreTier{
	{Value: "excellent", Label: "Excellent (750+)", Rate: 6.0},
	{Value: "good", Label: "Good (700-749)", Rate: 6.5},
	{Value: "fair", Label: "Fair (650-699)", Rate: 7.0},
	{Value: "poor", Label: "Poor (600-649)", Rate: 8.0},
}

// LoanTermOptions are the conventional fixed-rate terms, in years.
var LoanTermOptions = []int{10, 15, 20, 25, 30}
