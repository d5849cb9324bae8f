package get_recent_occupancy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SeatLive/internal/api/handlers"
	getRecentOccupancy "github.com/m04kA/SMC-SeatLive/internal/usecase/get_recent_occupancy"
)

const (
	msgInvalidDays = "некорректное число дней"
	msgNoData      = "нет данных за период"
)

type Handler struct {
	useCase GetRecentOccupancyUseCase
	logger  Logger
}

func NewHandler(useCase GetRecentOccupancyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/statistics/recent
// Query params: days (optional, 1..31)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &getRecentOccupancy.Request{}

	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days <= 0 {
			h.logger.Warn("GET /statistics/recent - Invalid days: %q", daysStr)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		req.Days = days
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getRecentOccupancy.ErrInvalidInput):
			h.logger.Warn("GET /statistics/recent - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDays)

		case errors.Is(err, getRecentOccupancy.ErrNoData):
			h.logger.Info("GET /statistics/recent - No data")
			handlers.RespondNotFound(w, msgNoData)

		default:
			h.logger.Error("GET /statistics/recent - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /statistics/recent - days=%d", len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
