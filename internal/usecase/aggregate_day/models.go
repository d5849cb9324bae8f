package aggregate_day

import (
	"time"

	"github.com/m04kA/SMC-SeatLive/internal/domain"
)

// Request расчёт detail_data за день
type Request struct {
	Date time.Time // день (время игнорируется)
}

// Response результат расчёта дня
type Response struct {
	Week       domain.WeekKey
	Date       time.Time
	Intervals  []domain.Interval
	Records    []domain.DetailRecord
	Events     int                       // сколько событий вошло в расчёт
	Aggregated []domain.AggregatedRecord // профиль недели после пересчёта
	NoWeekData bool
}

// Settings параметры расчёта
type Settings struct {
	Grid       domain.GridConfig
	TotalSeats int
	Location   *time.Location // часовой пояс заведения
}
