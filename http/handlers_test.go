package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"sparta-mortgage/domain"
	"sparta-mortgage/observability"
	"sparta-mortgage/repository"
	"sparta-mortgage/service"
)

type testEnv struct {
	handler http.Handler
	leads   *repository.LeadRepositoryMemory
}

func newTestEnv(t *testing.T, providers ...service.ChatProvider) testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics, err := observability.NewMetrics(noop.NewMeterProvider())
	require.NoError(t, err)

	mortgage := service.NewMortgageService(logger)
	leads := repository.NewLeadRepositoryMemory()
	chat := service.NewChatService(providers, 0, logger)

	limiter := NewRateLimiter(100, time.Minute)
	t.Cleanup(limiter.Stop)

	handler := NewRouter(Handlers{
		Mortgage: NewMortgageHandler(mortgage, metrics),
		Terms:    NewTermComparisonHandler(service.NewTermComparisonService(mortgage, logger)),
		Chat:     NewChatHandler(chat, logger),
		Contact:  NewContactHandler(service.NewContactService(leads, repository.NopLeadPublisher{}, logger), logger),
		Property: NewPropertyHandler(service.NewPropertyService(
			repository.NewListingRepositoryYAML(nil), repository.NewMemoryCache(0), logger), logger),
		Health: NewHealthHandler("sparta-mortgage", nil),
	}, limiter, logger, metrics)

	return testEnv{handler: handler, leads: leads}
}

func (e testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}

func TestCalculateMortgageHandler_OK(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/mortgage/calculate", `{
		"homePrice": 300000,
		"downPaymentPercent": 20,
		"annualInterestRatePercent": 6,
		"termYears": 30,
		"extraMonthlyPayment": 200
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	var result domain.ScheduleResult
	decodeBody(t, w, &result)
	assert.InDelta(t, 1438.92, result.MonthlyPayment, 0.01)
	require.NotNil(t, result.AcceleratedSummary)
	assert.Equal(t, 265, result.AcceleratedSummary.MonthsPaid)
	assert.Len(t, result.Chart, 30)
}

func TestCalculateMortgageHandler_CreditScoreRate(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/mortgage/calculate",
		`{"homePrice": 300000, "downPaymentPercent": 20, "termYears": 30, "creditScore": "fair"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.ScheduleResult
	decodeBody(t, w, &result)
	assert.InDelta(t, 0.07/12, result.MonthlyRate, 1e-12)
	assert.Nil(t, result.AcceleratedSummary)
}

func TestCalculateMortgageHandler_Errors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"method not allowed", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"bad json", http.MethodPost, `{invalid-json}`, http.StatusBadRequest},
		{"no rate", http.MethodPost, `{"homePrice": 1, "termYears": 30}`, http.StatusBadRequest},
		{"unknown tier", http.MethodPost, `{"homePrice": 1, "termYears": 30, "creditScore": "great"}`, http.StatusBadRequest},
		{"zero term", http.MethodPost, `{"homePrice": 1, "termYears": 0, "annualInterestRatePercent": 5}`, http.StatusBadRequest},
		{"down payment over 100", http.MethodPost, `{"homePrice": 1, "downPaymentPercent": 120, "termYears": 30, "annualInterestRatePercent": 5}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(tt.method, "/api/mortgage/calculate", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestCalculateMortgageHandler_UnsupportedMediaType(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/mortgage/calculate", strings.NewReader(`homePrice=1`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestMortgageOptionsHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/mortgage/options", "")
	require.Equal(t, http.StatusOK, w.Code)

	var opts domain.CalculatorOptions
	decodeBody(t, w, &opts)
	assert.Equal(t, []int{10, 15, 20, 25, 30}, opts.TermYears)
	require.Len(t, opts.CreditScores, 4)
	assert.Equal(t, "excellent", opts.CreditScores[0].Value)
}

func TestCompareTermsHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/mortgage/compare-terms",
		`{"homePrice": 300000, "downPaymentPercent": 20, "annualInterestRatePercent": 6, "preference": "minimize_interest"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.TermComparisonResult
	decodeBody(t, w, &result)
	assert.Equal(t, 10, result.RecommendedTermYears)
	assert.Len(t, result.Options, 5)

	w = env.do(http.MethodPost, "/api/mortgage/compare-terms",
		`{"homePrice": 300000, "downPaymentPercent": 20, "annualInterestRatePercent": 6, "maxMonthlyPayment": 10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func fakeProvider(t *testing.T, status int, content string) service.ChatProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":"boom"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": content}}},
			"usage":   map[string]int{"prompt_tokens": 5, "completion_tokens": 7, "total_tokens": 12},
		})
	}))
	t.Cleanup(srv.Close)
	return service.NewGrokProvider(service.ProviderConfig{APIKey: "xai-test", URL: srv.URL})
}

func TestChatHandler_OK(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t, http.StatusOK, "VA loans allow 0% down."))

	w := env.do(http.MethodPost, "/api/chat",
		`{"message": "Do VA loans need a down payment?", "conversationHistory": []}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var resp domain.ChatResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "VA loans allow 0% down.", resp.Response)
	assert.Equal(t, 12, resp.Usage.TotalTokens)
	assert.Equal(t, service.ProviderGrok, resp.Provider)
}

func TestChatHandler_ProviderFailure(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t, http.StatusUnauthorized, ""))

	w := env.do(http.MethodPost, "/api/chat", `{"message": "Hello"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp errorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "Failed to get AI response", resp.Error)
	assert.Contains(t, resp.Details, "status 401")
}

func TestChatHandler_NoProviderConfigured(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/chat", `{"message": "Hello"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp errorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "no chat provider configured", resp.Details)
}

func TestChatHandler_EmptyMessage(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/chat", `{"message": ""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHandler_Preflight(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/chat", "/api/contact"} {
		w := env.do(http.MethodOptions, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), path)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST", path)
		assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"), path)
	}
}

func TestProbeProviderHandler(t *testing.T) {
	env := newTestEnv(t, fakeProvider(t, http.StatusOK, "Test successful"))

	w := env.do(http.MethodGet, "/api/chat/providers/grok/test", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp probeResponse
	decodeBody(t, w, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "Test successful", resp.Response)

	w = env.do(http.MethodGet, "/api/chat/providers/anthropic/test", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactHandler_OK(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/contact", `{
		"name": "Jordan Smith",
		"email": "jordan@example.com",
		"preferredContact": "email",
		"chatbotContext": [{"role": "user", "content": "Hi", "timestamp": "2026-01-01T00:00:00Z"}]
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp contactResponse
	decodeBody(t, w, &resp)
	assert.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.LeadID, "LEAD_"))
	_, err := time.Parse(time.RFC3339Nano, resp.Timestamp)
	assert.NoError(t, err)

	leads, err := env.leads.List(t.Context())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, resp.LeadID, leads[0].ID)
	assert.Len(t, leads[0].Submission.ChatbotContext, 1)
}

func TestContactHandler_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/contact", `{"name": "Jordan"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "Name and email are required", resp.Error)
}

func TestPropertyHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/properties?location=Louisville&minPrice=250000&beds=3&sortBy=price_high&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.PropertySearchResult
	decodeBody(t, w, &result)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Properties, 2)
	assert.Equal(t, "4", result.Properties[0].ID)
	assert.Equal(t, "2", result.Properties[1].ID)
	require.NotNil(t, result.Filters.MinPrice)
	assert.Equal(t, 250_000.0, *result.Filters.MinPrice)
	assert.Equal(t, "Louisville", result.Filters.Location)
}

func TestPropertyHandler_InvalidNumber(t *testing.T) {
	env := newTestEnv(t)

	for _, query := range []string{
		"minPrice=cheap", "beds=two", "baths=x", "limit=1.5",
		"minPrice=NaN", "maxPrice=Inf", "baths=nan", "maxPrice=-Infinity",
	} {
		w := env.do(http.MethodGet, "/api/properties?"+query, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestHealthHandler(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
