package http

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"emi-engine/domain"
	"emi-engine/service"
)

type LoanHandler struct {
	service *service.LoanService
	logger  *zap.Logger
}

func NewLoanHandler(service *service.LoanService, logger *zap.Logger) *LoanHandler {
	return &LoanHandler{service: service, logger: logger.Named("loan_handler")}
}

// CalculateLoan answers 200 with the solved result, or 422 with the invalid
// result record when the inputs have no valid solution.
func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if !decodePost(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.CalculateLoan(r.Context(), input)
	if err != nil {
		var calcErr *service.CalculationError
		if errors.As(err, &calcErr) {
			writeJSON(w, h.logger, http.StatusUnprocessableEntity, result)
			return
		}
		writeError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

// History lists recent calculations; ?limit=N bounds the count.
func (h *LoanHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, h.logger, http.StatusBadRequest, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	records, err := h.service.History(r.Context(), limit)
	if err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []domain.CalculationRecord{}
	}

	writeJSON(w, h.logger, http.StatusOK, records)
}
