package aggregation

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

type weeklyKey struct {
	weekday       time.Weekday
	intervalIndex int
}

type weeklySum struct {
	occupied int
	samples  int
}

// AggregateWeek усредняет occupied_count по группам (день недели, интервал)
//
// Учитываются только дни Пн-Пт. Группы без данных в результат не попадают:
// отсутствие записи означает "нет данных", а не "ноль посетителей".
// Функция не хранит состояния: повторный вызов на тех же данных даёт
// побитово тот же результат (суммы целочисленные, порядок фиксирован).
func AggregateWeek(details []domain.DetailRecord) ([]domain.AggregatedRecord, error) {
	if len(details) == 0 {
		return []domain.AggregatedRecord{}, ErrIncompleteData
	}

	sums := make(map[weeklyKey]*weeklySum)
	for _, rec := range details {
		weekday := rec.Weekday()
		if !domain.IsTrackedWeekday(weekday) {
			continue
		}

		key := weeklyKey{weekday: weekday, intervalIndex: rec.IntervalIndex}
		sum, ok := sums[key]
		if !ok {
			sum = &weeklySum{}
			sums[key] = sum
		}
		sum.occupied += rec.OccupiedCount
		sum.samples++
	}

	result := make([]domain.AggregatedRecord, 0, len(sums))
	for key, sum := range sums {
		result = append(result, domain.AggregatedRecord{
			Weekday:         key.weekday,
			IntervalIndex:   key.intervalIndex,
			AverageOccupied: float64(sum.occupied) / float64(sum.samples),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Weekday != result[j].Weekday {
			return result[i].Weekday < result[j].Weekday
		}
		return result[i].IntervalIndex < result[j].IntervalIndex
	})

	return result, nil
}

// FlattenDetail собирает детальные записи всех дней в один слайс (дни по возрастанию)
func FlattenDetail(byDay map[string][]domain.DetailRecord) []domain.DetailRecord {
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	result := make([]domain.DetailRecord, 0)
	for _, day := range days {
		result = append(result, byDay[day]...)
	}
	return result
}
