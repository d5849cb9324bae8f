package get_seat_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SeatLive/internal/api/handlers"
	"github.com/m04kA/SMC-SeatLive/internal/service/seats"
)

const msgNoSeatStatus = "нет данных о состоянии мест"

type Handler struct {
	service SeatService
	logger  Logger
}

func NewHandler(service SeatService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/seats/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.GetSnapshot(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, seats.ErrNoSeatStatus):
			h.logger.Warn("GET /seats/status - Seat status is empty")
			handlers.RespondNotFound(w, msgNoSeatStatus)

		default:
			h.logger.Error("GET /seats/status - Failed to get snapshot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /seats/status - occupied=%d/%d level=%s",
		snapshot.OccupiedSeats, snapshot.TotalSeats, snapshot.Level)
	handlers.RespondJSON(w, http.StatusOK, snapshot)
}
