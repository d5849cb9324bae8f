package get_recent_occupancy

import (
	"fmt"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.Days < 0 || req.Days > domain.MaxRecentDays {
		return fmt.Errorf("%w: days must be in 1..%d, got %d", ErrInvalidInput, domain.MaxRecentDays, req.Days)
	}
	return nil
}
