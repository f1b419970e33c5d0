package http

import (
	"net/http"

	"go.uber.org/zap"

	"emi-engine/domain"
	"emi-engine/service"
)

type ScheduleHandler struct {
	service *service.ScheduleService
	logger  *zap.Logger
}

func NewScheduleHandler(service *service.ScheduleService, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{service: service, logger: logger.Named("schedule_handler")}
}

func (h *ScheduleHandler) BuildSchedule(w http.ResponseWriter, r *http.Request) {
	var input domain.ScheduleInput
	if !decodePost(w, r, h.logger, &input) {
		return
	}

	result, err := h.service.BuildSchedule(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
