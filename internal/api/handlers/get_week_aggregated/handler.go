package get_week_aggregated

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SeatLive/internal/api/handlers"
	"github.com/m04kA/SMC-SeatLive/internal/service/statistics"
)

const (
	msgInvalidWeek  = "некорректная неделя, ожидается week_N"
	msgWeekNotFound = "нет данных за неделю"
)

type Handler struct {
	service StatisticsService
	logger  Logger
}

func NewHandler(service StatisticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/statistics/weeks/{week}/aggregated
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	week := mux.Vars(r)["week"]

	aggregated, err := h.service.GetAggregated(r.Context(), week)
	if err != nil {
		switch {
		case errors.Is(err, statistics.ErrInvalidWeek):
			h.logger.Warn("GET /statistics/weeks/{week}/aggregated - Invalid week: %q", week)
			handlers.RespondBadRequest(w, msgInvalidWeek)

		case errors.Is(err, statistics.ErrWeekNotFound):
			h.logger.Info("GET /statistics/weeks/{week}/aggregated - No data: week=%s", week)
			handlers.RespondNotFound(w, msgWeekNotFound)

		default:
			h.logger.Error("GET /statistics/weeks/{week}/aggregated - Failed: week=%s, error=%v", week, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /statistics/weeks/{week}/aggregated - week=%s weekdays=%d", week, len(aggregated.Weekdays))
	handlers.RespondJSON(w, http.StatusOK, aggregated)
}
