package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"emi-engine/domain"
	"emi-engine/repository"
	"emi-engine/service"
)

func newTestLoanHandler() *LoanHandler {
	svc := service.NewLoanService(
		repository.NewLoanRepositoryMemory(),
		repository.NewMockCache(),
		zap.NewNop(),
	)
	return NewLoanHandler(svc, zap.NewNop())
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCalculateLoanHandler_OK(t *testing.T) {
	handler := newTestLoanHandler()

	w := httptest.NewRecorder()
	handler.CalculateLoan(w, postJSON("/loan/calculate", `{
		"mode": "emi",
		"principal": 500000,
		"interest_rate": 12,
		"tenure_months": 24
	}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result domain.LoanResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.True(t, result.Valid)
	assert.Equal(t, 23536.74, result.EMI)
	assert.Equal(t, 564881.67, result.TotalPayment)
}

func TestCalculateLoanHandler_InvalidResult(t *testing.T) {
	handler := newTestLoanHandler()

	w := httptest.NewRecorder()
	handler.CalculateLoan(w, postJSON("/loan/calculate",
		`{"mode": "emi", "principal": -100, "interest_rate": 12, "tenure_months": 24}`))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var result domain.LoanResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.False(t, result.Valid)
	assert.Equal(t, "invalid_input", result.Failure)
	assert.NotEmpty(t, result.Reason)
	assert.Zero(t, result.EMI)
}

func TestCalculateLoanHandler_UnknownMode(t *testing.T) {
	handler := newTestLoanHandler()

	w := httptest.NewRecorder()
	handler.CalculateLoan(w, postJSON("/loan/calculate",
		`{"mode": "fees", "principal": 100, "interest_rate": 12, "tenure_months": 24}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateLoanHandler_MethodNotAllowed(t *testing.T) {
	handler := newTestLoanHandler()

	req := httptest.NewRequest(http.MethodGet, "/loan/calculate", nil)
	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCalculateLoanHandler_UnsupportedMediaType(t *testing.T) {
	handler := newTestLoanHandler()

	req := httptest.NewRequest(http.MethodPost, "/loan/calculate", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestCalculateLoanHandler_BadRequest(t *testing.T) {
	handler := newTestLoanHandler()

	for _, body := range []string{`{invalid-json}`, `{"mode": "emi", "amount": 5}`} {
		w := httptest.NewRecorder()
		handler.CalculateLoan(w, postJSON("/loan/calculate", body))

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestHistoryHandler(t *testing.T) {
	handler := newTestLoanHandler()

	for _, p := range []string{"1000", "2000"} {
		w := httptest.NewRecorder()
		handler.CalculateLoan(w, postJSON("/loan/calculate",
			`{"mode": "emi", "principal": `+p+`, "interest_rate": 10, "tenure_months": 12}`))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	handler.History(w, httptest.NewRequest(http.MethodGet, "/loan/history?limit=1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var records []domain.CalculationRecord
	require.NoError(t, json.NewDecoder(w.Body).Decode(&records))
	require.Len(t, records, 1)
	assert.Equal(t, 2000.0, records[0].Input.Principal)

	w = httptest.NewRecorder()
	handler.History(w, httptest.NewRequest(http.MethodGet, "/loan/history?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	handler.History(w, httptest.NewRequest(http.MethodPost, "/loan/history", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
