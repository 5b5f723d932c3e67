package http

import (
	"log/slog"
	"net/http"

	"sparta-mortgage/observability"
)

type Handlers struct {
	Mortgage *MortgageHandler
	Terms    *TermComparisonHandler
	Chat     *ChatHandler
	Contact  *ContactHandler
	Property *PropertyHandler
	Health   *HealthHandler
	Metrics  http.Handler
}

// NewRouter registers every API route. Routes that reach paid third-party
// APIs or record leads are rate limited per client.
func NewRouter(
	h Handlers,
	limiter *RateLimiter,
	logger *slog.Logger,
	metrics *observability.Metrics,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/mortgage/calculate", h.Mortgage.Calculate)
	mux.HandleFunc("/api/mortgage/options", h.Mortgage.Options)
	mux.HandleFunc("/api/mortgage/compare-terms", h.Terms.CompareTerms)

	mux.Handle("/api/chat", CORS(RateLimitMiddleware(limiter, http.HandlerFunc(h.Chat.Chat))))
	mux.Handle("GET /api/chat/providers/{name}/test",
		RateLimitMiddleware(limiter, http.HandlerFunc(h.Chat.ProbeProvider)))

	mux.Handle("/api/contact", CORS(RateLimitMiddleware(limiter, http.HandlerFunc(h.Contact.Submit))))

	mux.HandleFunc("/api/properties", h.Property.Search)

	h.Health.RegisterRoutes(mux)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	return RequestLogger(logger, metrics, mux)
}
