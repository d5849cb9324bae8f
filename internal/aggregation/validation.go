package aggregation

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// validateEvents проверяет инварианты журнала событий:
// - у события есть место и время занятия
// - occupied_at строго раньше vacated_at
// - события одного места не пересекаются (смежные допустимы)
// - после события "ещё занято" у того же места других событий нет
// - событие "ещё занято" не может начинаться позже now
func validateEvents(events []domain.OccupancyEvent, now time.Time) error {
	bySeat := make(map[string][]domain.OccupancyEvent)

	for i, ev := range events {
		if ev.SeatID == "" {
			return fmt.Errorf("%w: event #%d has empty seat id", ErrInvalidEvent, i)
		}
		if ev.OccupiedAt.IsZero() {
			return fmt.Errorf("%w: event #%d (seat %s) has no occupied_at", ErrInvalidEvent, i, ev.SeatID)
		}

		if vacatedAt, ok := ev.VacatedAt.At(); ok {
			if !ev.OccupiedAt.Before(vacatedAt) {
				return fmt.Errorf("%w: seat %s occupied_at %s is not before vacated_at %s",
					ErrInvalidEvent, ev.SeatID, ev.OccupiedAt.Format(time.RFC3339), vacatedAt.Format(time.RFC3339))
			}
		} else if ev.OccupiedAt.After(now) {
			return fmt.Errorf("%w: seat %s is still occupied since %s, which is in the future",
				ErrInvalidEvent, ev.SeatID, ev.OccupiedAt.Format(time.RFC3339))
		}

		bySeat[ev.SeatID] = append(bySeat[ev.SeatID], ev)
	}

	for seatID, seatEvents := range bySeat {
		sort.SliceStable(seatEvents, func(i, j int) bool {
			return seatEvents[i].OccupiedAt.Before(seatEvents[j].OccupiedAt)
		})

		for i := 1; i < len(seatEvents); i++ {
			prev, next := seatEvents[i-1], seatEvents[i]

			prevEnd, ok := prev.VacatedAt.At()
			if !ok {
				return fmt.Errorf("%w: seat %s has an event at %s after a still occupied one",
					ErrInvalidEvent, seatID, next.OccupiedAt.Format(time.RFC3339))
			}
			// Смежные события (prevEnd == next.OccupiedAt) - разные занятия, это не пересечение
			if prevEnd.After(next.OccupiedAt) {
				return fmt.Errorf("%w: seat %s events overlap (%s vacated at %s, next occupied at %s)",
					ErrInvalidEvent, seatID, prev.OccupiedAt.Format(time.RFC3339),
					prevEnd.Format(time.RFC3339), next.OccupiedAt.Format(time.RFC3339))
			}
		}
	}

	return nil
}
