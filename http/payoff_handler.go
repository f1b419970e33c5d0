package http

import (
	"net/http"

	"go.uber.org/zap"

	"emi-engine/domain"
	"emi-engine/service"
)

type PayoffHandler struct {
	service *service.PayoffService
	logger  *zap.Logger
}

func NewPayoffHandler(service *service.PayoffService, logger *zap.Logger) *PayoffHandler {
	return &PayoffHandler{service: service, logger: logger.Named("payoff_handler")}
}

func (h *PayoffHandler) PlanPayoff(w http.ResponseWriter, r *http.Request) {
	var input domain.PayoffInput
	if !decodePost(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.PlanPayoff(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
