package aggregation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// span занятость места, уже приведённая к конкретному концу
type span struct {
	seatID string
	from   time.Time
	to     time.Time
}

// AggregateDay считает для каждого интервала сетки количество различных занятых мест
//
// Место занято в интервале [s, e), если его период занятости [occupied_at, vacated_at)
// пересекается с интервалом: occupied_at < e И vacated_at > s.
// Для "ещё занятых" мест vacated_at = now, но не позже конца рабочего окна дня.
//
// Примеры (интервал 09:15-09:30):
// - занято 09:05-09:40 → считается (и ещё в 09:00-09:15 и 09:30-09:45)
// - занято 09:00-09:15 → НЕ считается (граничат)
// - занято 09:30-09:45 → НЕ считается (граничат)
//
// Любое некорректное событие отменяет расчёт всего дня (ErrInvalidEvent):
// частичная агрегация исказила бы недельное среднее.
func AggregateDay(
	day time.Time,
	grid []domain.Interval,
	totalSeats int,
	events []domain.OccupancyEvent,
	now time.Time,
) ([]domain.DetailRecord, error) {
	if totalSeats <= 0 {
		return nil, fmt.Errorf("%w: total seats must be positive, got %d", ErrConfig, totalSeats)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: empty interval grid", ErrConfig)
	}

	if err := validateEvents(events, now); err != nil {
		return nil, err
	}

	dayEnd := grid[len(grid)-1].End
	spans := make([]span, 0, len(events))
	for _, ev := range events {
		spans = append(spans, span{
			seatID: ev.SeatID,
			from:   ev.OccupiedAt,
			to:     ev.VacatedAt.Resolve(now, dayEnd),
		})
	}

	dayDate := truncateToDay(day)
	records := make([]domain.DetailRecord, len(grid))

	for i, interval := range grid {
		occupied := countOccupiedSeats(interval, spans)
		if occupied > totalSeats {
			return nil, fmt.Errorf("%w: %d distinct seats occupied in %s, but only %d seats exist",
				ErrInvalidEvent, occupied, interval.Label(), totalSeats)
		}

		records[i] = domain.DetailRecord{
			DayDate:       dayDate,
			IntervalIndex: interval.Index,
			OccupiedCount: occupied,
			TotalSeats:    totalSeats,
		}
	}

	return records, nil
}

// countOccupiedSeats количество различных мест, чья занятость пересекается с интервалом
// Одно место может попасть в интервал двумя смежными событиями, но считается один раз
func countOccupiedSeats(interval domain.Interval, spans []span) int {
	seats := make(map[string]struct{})

	for _, s := range spans {
		if interval.Overlaps(s.from, s.to) {
			seats[s.seatID] = struct{}{}
		}
	}

	return len(seats)
}

// truncateToDay обнуляет время, сохраняя локацию
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
