package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"emi-engine/domain"
	"emi-engine/repository"
	"emi-engine/service"
)

func newTestRouter(t *testing.T, capacity int) http.Handler {
	logger := zap.NewNop()
	loanService := service.NewLoanService(
		repository.NewLoanRepositoryMemory(),
		repository.NewMockCache(),
		logger,
	)
	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(Handlers{
		Loan:     NewLoanHandler(loanService, logger),
		Schedule: NewScheduleHandler(service.NewScheduleService(logger), logger),
		Term:     NewTermRecommendationHandler(service.NewTermRecommendationService(loanService, logger), logger),
		Payoff:   NewPayoffHandler(service.NewPayoffService(logger), logger),
	}, limiter, logger)
}

func TestRouter_Endpoints(t *testing.T) {
	router := newTestRouter(t, 100)

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"calculate", "/loan/calculate", `{"mode":"rate","principal":500000,"emi":23537.01,"tenure_months":24}`, http.StatusOK},
		{"schedule", "/loan/schedule", `{"principal":1200,"interest_rate":0,"tenure_months":12}`, http.StatusOK},
		{"schedule invalid", "/loan/schedule", `{"principal":0,"interest_rate":0,"tenure_months":12}`, http.StatusBadRequest},
		{"recommend", "/loan/recommend-term", `{"principal":10000,"interest_rate":12,"min_tenure_months":12,"max_tenure_months":36,"max_monthly_payment":500,"preference":"balanced"}`, http.StatusOK},
		{"payoff", "/loan/payoff-plan", `{"debts":[{"name":"Card","balance":5000,"interest_rate":24,"minimum_payment":150}],"monthly_budget":400,"strategy":"avalanche"}`, http.StatusOK},
		{"payoff invalid", "/loan/payoff-plan", `{"debts":[],"monthly_budget":400,"strategy":"avalanche"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, postJSON(tt.path, tt.body))

			assert.Equal(t, tt.code, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get(requestIDHeader))
		})
	}
}

func TestRouter_ScheduleBody(t *testing.T) {
	router := newTestRouter(t, 100)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, postJSON("/loan/schedule", `{"principal":1200,"interest_rate":0,"tenure_months":12}`))
	require.Equal(t, http.StatusOK, w.Code)

	var result domain.ScheduleResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, 100.0, result.EMI)
	assert.Len(t, result.Entries, 12)
}

func TestRouter_HealthIsNotRateLimited(t *testing.T) {
	router := newTestRouter(t, 1)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	codes := []int{}
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/loan/history", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRouter_KeepsRequestID(t *testing.T) {
	router := newTestRouter(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}
