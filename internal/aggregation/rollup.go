package aggregation

import (
	"sort"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// HourlyOccupancy среднее число занятых мест за час
type HourlyOccupancy struct {
	Hour            int
	AverageOccupied float64
}

// HourlyRollup группирует интервалы дня по часу начала и усредняет occupied_count
func HourlyRollup(records []domain.DetailRecord, cfg domain.GridConfig) ([]HourlyOccupancy, error) {
	if err := ValidateGrid(cfg); err != nil {
		return nil, err
	}

	sums := make(map[int]*weeklySum)
	for _, rec := range records {
		startMinutes := cfg.OpenTime.Minutes() + rec.IntervalIndex*cfg.GranularityMinutes
		hour := startMinutes / 60

		sum, ok := sums[hour]
		if !ok {
			sum = &weeklySum{}
			sums[hour] = sum
		}
		sum.occupied += rec.OccupiedCount
		sum.samples++
	}

	result := make([]HourlyOccupancy, 0, len(sums))
	for hour, sum := range sums {
		result = append(result, HourlyOccupancy{
			Hour:            hour,
			AverageOccupied: float64(sum.occupied) / float64(sum.samples),
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Hour < result[j].Hour })

	return result, nil
}
