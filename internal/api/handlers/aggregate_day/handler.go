package aggregate_day

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SeatLive/internal/api/handlers"
	aggregateDay "github.com/m04kA/SMC-SeatLive/internal/usecase/aggregate_day"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInFuture  = "день ещё не наступил"
	msgInvalidEvents = "журнал событий дня противоречив, день не пересчитан"
	msgInvalidConfig = "некорректная конфигурация сетки интервалов"
)

type Handler struct {
	useCase  AggregateDayUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase AggregateDayUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/statistics/days/{date}/aggregate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]

	useCaseReq, err := ToUseCaseRequest(dateStr, h.location)
	if err != nil {
		h.logger.Warn("POST /statistics/days/{date}/aggregate - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, aggregateDay.ErrDateInFuture):
			h.logger.Warn("POST /statistics/days/{date}/aggregate - Date in future: %s", dateStr)
			handlers.RespondBadRequest(w, msgDateInFuture)

		case errors.Is(err, aggregateDay.ErrInvalidInput):
			h.logger.Warn("POST /statistics/days/{date}/aggregate - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, aggregateDay.ErrInvalidEvents):
			h.logger.Warn("POST /statistics/days/{date}/aggregate - Invalid events: date=%s, error=%v", dateStr, err)
			handlers.RespondUnprocessable(w, msgInvalidEvents)

		case errors.Is(err, aggregateDay.ErrInvalidConfig):
			h.logger.Error("POST /statistics/days/{date}/aggregate - Invalid config: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgInvalidConfig)

		default:
			h.logger.Error("POST /statistics/days/{date}/aggregate - Failed: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /statistics/days/{date}/aggregate - date=%s week=%s events=%d",
		dateStr, result.Week, result.Events)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
