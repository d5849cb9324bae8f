package seats

import (
	"fmt"

	"github.com/m04kA/SMC-SeatLive/internal/service/seats/models"
)

// validateTransition валидирует входящее событие детектора
func validateTransition(req *models.TransitionRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.SeatID == "" {
		return fmt.Errorf("%w: seat_id is required", ErrInvalidInput)
	}
	if !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	if req.ChangedAt.IsZero() {
		return fmt.Errorf("%w: changed_at is required", ErrInvalidInput)
	}
	return nil
}
