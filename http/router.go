package http

import (
	"net/http"

	"go.uber.org/zap"
)

// Handlers groups the endpoint handlers served by the API.
type Handlers struct {
	Loan     *LoanHandler
	Schedule *ScheduleHandler
	Term     *TermRecommendationHandler
	Payoff   *PayoffHandler
}

// NewRouter mounts every endpoint. Calculation endpoints share the rate
// limiter; /healthz is exempt.
func NewRouter(h Handlers, limiter *RateLimiter, logger *zap.Logger) http.Handler {
	limited := func(fn http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, logger, fn)
	}

	mux := http.NewServeMux()
	mux.Handle("/loan/calculate", limited(h.Loan.CalculateLoan))
	mux.Handle("/loan/history", limited(h.Loan.History))
	mux.Handle("/loan/schedule", limited(h.Schedule.BuildSchedule))
	mux.Handle("/loan/recommend-term", limited(h.Term.RecommendTerm))
	mux.Handle("/loan/payoff-plan", limited(h.Payoff.PlanPayoff))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	})

	return LoggingMiddleware(logger, mux)
}
