package http

import (
	"net/http"

	"go.uber.org/zap"

	"emi-engine/domain"
	"emi-engine/service"
)

type TermRecommendationHandler struct {
	service *service.TermRecommendationService
	logger  *zap.Logger
}

func NewTermRecommendationHandler(service *service.TermRecommendationService, logger *zap.Logger) *TermRecommendationHandler {
	return &TermRecommendationHandler{service: service, logger: logger.Named("term_handler")}
}

func (h *TermRecommendationHandler) RecommendTerm(w http.ResponseWriter, r *http.Request) {
	var input domain.TermRecommendationInput
	if !decodePost(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.RecommendTerm(r.Context(), input)
	if err != nil {
		h.logger.Info("term recommendation rejected", zap.Error(err))
		writeError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
